package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bhashamitra/lingua-api/internal/platform/tts"
	"github.com/bhashamitra/lingua-api/internal/service/review"
	"github.com/bhashamitra/lingua-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, review.ErrWordNotFound),
		errors.Is(err, store.ErrWordNotFound),
		errors.Is(err, store.ErrWordProgressNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, review.ErrInvalidQuality),
		errors.Is(err, review.ErrInvalidAttempt):
		return http.StatusBadRequest

	// Upstream synthesis failures
	case errors.Is(err, tts.ErrSynthesisFailed):
		return http.StatusBadGateway

	// Special cases
	case errors.Is(err, review.ErrNoWordsDue):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, review.ErrWordNotFound),
		errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, store.ErrWordProgressNotFound):
		return "Word progress not found"

	case errors.Is(err, review.ErrInvalidQuality):
		return "Invalid recall quality"

	case errors.Is(err, review.ErrInvalidAttempt):
		return "Invalid pronunciation attempt"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrDuplicate):
		return "Entry already exists"

	case errors.Is(err, tts.ErrSynthesisFailed):
		return "Speech synthesis is currently unavailable"

	// No words due is handled separately with StatusNoContent

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation
// errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'ReviewRequest.Quality' Error:Field
		// validation for 'Quality' failed on the 'max' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error
// messages.
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "value too small"
	case "max":
		return "value too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
