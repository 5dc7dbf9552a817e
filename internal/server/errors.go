package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/placement-matcher/internal/db"
	"github.com/jonathan/placement-matcher/internal/ingestion"
	"github.com/jonathan/placement-matcher/internal/parsing"
	"github.com/jonathan/placement-matcher/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates a request body above the configured cap
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ErrStorageUnavailable indicates an operation that needs a database the server was started without
type ErrStorageUnavailable struct{}

func (e *ErrStorageUnavailable) Error() string {
	return "analysis storage is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		inputErr       *parsing.ValidationError
		schemaErr      *schemas.ValidationError
		tooLargeErr    *ErrPayloadTooLarge
		unsupportedErr *ingestion.UnsupportedFormatError
		extractErr     *ingestion.ExtractError
		storageErr     *ErrStorageUnavailable
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &inputErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupportedErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &storageErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
