package model

import (
	"errors"
	"net/http"
)

var (
	// Not found
	ErrArtistNotFound    = errors.New("artist not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrArtworkNotFound   = errors.New("artwork not found")
	ErrArtworkNotLinked  = errors.New("artwork not linked to this category")
	ErrNoArtworksInGroup = errors.New("no artworks found for this category")

	// Foreign keys supplied on create/update that do not resolve
	ErrArtistReferenceNotFound   = errors.New("referenced artist not found")
	ErrCategoryReferenceNotFound = errors.New("referenced category not found")

	// Request shape
	ErrIDMismatch = errors.New("id in path does not match id in payload")
	ErrInvalidID  = errors.New("id must be an integer")

	// Optimistic locking
	ErrConcurrencyConflict = errors.New("entity was modified concurrently - conflict detected")

	// Unlink fallback
	ErrDefaultCategoryMissing = errors.New("default category is missing")
	ErrUnlinkFromDefault      = errors.New("artwork cannot be unlinked from the default category")
)

// ValidationError reports a missing or malformed field. Err is usually an
// ozzo-validation Errors map keyed by json field name.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps err unless it is nil.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound groups every error reported to callers as "not found".
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrArtistNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrArtworkNotFound),
		errors.Is(err, ErrArtworkNotLinked),
		errors.Is(err, ErrNoArtworksInGroup),
		errors.Is(err, ErrArtistReferenceNotFound),
		errors.Is(err, ErrCategoryReferenceNotFound):
		return true
	}
	return false
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrArtistNotFound):
		return "ARTIST_NOT_FOUND"
	case errors.Is(err, ErrCategoryNotFound):
		return "CATEGORY_NOT_FOUND"
	case errors.Is(err, ErrArtworkNotFound):
		return "ARTWORK_NOT_FOUND"
	case errors.Is(err, ErrArtworkNotLinked):
		return "ARTWORK_NOT_LINKED"
	case errors.Is(err, ErrNoArtworksInGroup):
		return "NO_ARTWORKS"
	case errors.Is(err, ErrArtistReferenceNotFound):
		return "ARTIST_REFERENCE_NOT_FOUND"
	case errors.Is(err, ErrCategoryReferenceNotFound):
		return "CATEGORY_REFERENCE_NOT_FOUND"
	case errors.Is(err, ErrIDMismatch):
		return "ID_MISMATCH"
	case errors.Is(err, ErrInvalidID):
		return "INVALID_ID"
	case errors.Is(err, ErrConcurrencyConflict):
		return "VERSION_CONFLICT"
	case errors.Is(err, ErrDefaultCategoryMissing):
		return "DEFAULT_CATEGORY_MISSING"
	case errors.Is(err, ErrUnlinkFromDefault):
		return "UNLINK_FROM_DEFAULT"
	case IsValidation(err):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, ErrIDMismatch),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrDefaultCategoryMissing),
		errors.Is(err, ErrUnlinkFromDefault),
		IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
