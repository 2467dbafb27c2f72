package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hanzideck/hanzideck-api/internal/service/study"
	"github.com/hanzideck/hanzideck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, study.ErrUnknownWord),
		errors.Is(err, store.ErrProgressNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, study.ErrInvalidMode),
		errors.Is(err, study.ErrEmptyResults),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, study.ErrUnknownWord):
		return "Word not found"

	case errors.Is(err, store.ErrProgressNotFound):
		return "Word progress not found"

	case errors.Is(err, study.ErrInvalidMode):
		return "Invalid study mode"

	case errors.Is(err, study.ErrEmptyResults):
		return "Study results cannot be empty"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		var serviceErr *study.ServiceError
		if errors.As(err, &serviceErr) {
			switch serviceErr.Operation {
			case "select_batch":
				return "Failed to select study batch"
			case "process_results":
				return "Failed to process study results"
			}
		}
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'StudyResultsRequest.Results' Error:Field
	// validation for 'Results' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
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

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt", "gte":
		return "value too small"
	default:
		return "validation failed"
	}
}
