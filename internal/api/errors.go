package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/molweight-api/internal/api/shared"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/formula"
	"github.com/phrazzld/molweight-api/internal/service"
	"github.com/phrazzld/molweight-api/internal/service/auth"
	"github.com/phrazzld/molweight-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrCompoundNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrFormulaConflict),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Formula rejected by the analyzer
	case errors.Is(err, formula.ErrInvalidFormula):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrSymbolTableNotLoaded):
		return http.StatusServiceUnavailable

	// Default (including formula.ErrInternal): internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var analysisErr *formula.AnalysisError
	if errors.As(err, &analysisErr) && errors.Is(err, formula.ErrInvalidFormula) {
		// Analyzer messages only quote the caller's own input.
		return analysisErr.Message
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid token"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this compound"

	case errors.Is(err, service.ErrCompoundNotFound),
		errors.Is(err, store.ErrCompoundNotFound):
		return "Compound not found"

	case errors.Is(err, store.ErrElementNotFound):
		return "Element not found"

	case errors.Is(err, service.ErrFormulaConflict),
		errors.Is(err, store.ErrFormulaExists):
		return "A compound with this formula is already registered"

	case errors.Is(err, domain.ErrValidation):
		return sanitizeDomainValidation(err)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, service.ErrSymbolTableNotLoaded):
		return "Element registry is not available yet"

	default:
		return "An unexpected error occurred"
	}
}

// sanitizeDomainValidation returns the innermost domain validation message.
// Domain validation errors are static texts built from ErrValidation.
func sanitizeDomainValidation(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		msg := e.Error()
		prefix := domain.ErrValidation.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return "Validation error"
}

// SanitizeValidationError turns validator failures into a short message
// naming the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte", "gt":
		return "too small"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}

// formulaErrorDetails extracts location details from an analyzer rejection.
func formulaErrorDetails(err error) *shared.ErrorDetails {
	var analysisErr *formula.AnalysisError
	if !errors.As(err, &analysisErr) || !errors.Is(err, formula.ErrInvalidFormula) {
		return nil
	}
	details := &shared.ErrorDetails{
		Kind:       analysisErr.Code(),
		Segment:    analysisErr.Segment,
		Suggestion: analysisErr.Suggestion,
	}
	if analysisErr.Pos >= 0 {
		pos := analysisErr.Pos
		details.Position = &pos
	}
	return details
}

// HandleAPIError writes the status, safe message and, for rejected formulas,
// the error details for err. A non-empty fallback replaces the generic
// message of unexpected errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if details := formulaErrorDetails(err); details != nil {
		opts = append(opts, shared.WithDetails(details))
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
