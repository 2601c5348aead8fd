package auth

import "errors"

// Token validation failures. The API maps all of them to 401.
var (
	// ErrInvalidToken covers malformed tokens, bad signatures and unusable subjects.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrExpiredToken is returned for tokens past their exp claim.
	ErrExpiredToken = errors.New("access token has expired")

	// ErrTokenNotYetValid is returned when nbf lies beyond the allowed clock skew.
	ErrTokenNotYetValid = errors.New("access token not yet valid")

	// ErrMissingToken means no bearer token accompanied the request.
	ErrMissingToken = errors.New("access token is missing")

	// ErrWrongTokenType is returned for signed tokens that are not access tokens.
	ErrWrongTokenType = errors.New("token is not an access token")
)
