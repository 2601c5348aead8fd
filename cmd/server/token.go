package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/config"
	"github.com/phrazzld/molweight-api/internal/service/auth"
)

// issueAccessToken signs an access token for rawUserID. Users are identified
// only by the token subject, so this is how operators hand out credentials.
func issueAccessToken(ctx context.Context, cfg config.AuthConfig, rawUserID string) (string, error) {
	userID, err := uuid.Parse(rawUserID)
	if err != nil || userID == uuid.Nil {
		return "", fmt.Errorf("invalid user ID %q", rawUserID)
	}

	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	token, err := jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
