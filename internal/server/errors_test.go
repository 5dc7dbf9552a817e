package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/placement-matcher/internal/db"
	"github.com/jonathan/placement-matcher/internal/ingestion"
	"github.com/jonathan/placement-matcher/internal/parsing"
	"github.com/jonathan/placement-matcher/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"request validation", &ErrValidation{Field: "id", Message: "bad"}, http.StatusBadRequest},
		{"engine validation", &parsing.ValidationError{Field: "profile", Message: "required"}, http.StatusBadRequest},
		{"wrapped engine validation", fmt.Errorf("analyze: %w", &parsing.ValidationError{Message: "x"}), http.StatusBadRequest},
		{"schema validation", &schemas.ValidationError{}, http.StatusBadRequest},
		{"not found", db.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", db.ErrNotFound), http.StatusNotFound},
		{"too large", &ErrPayloadTooLarge{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"unsupported format", &ingestion.UnsupportedFormatError{Filename: "a.odt", Ext: ".odt"}, http.StatusUnsupportedMediaType},
		{"extraction failure", &ingestion.ExtractError{Format: ingestion.FormatPDF, Cause: errors.New("eof")}, http.StatusUnprocessableEntity},
		{"no storage", &ErrStorageUnavailable{}, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "request body exceeds 512 bytes", (&ErrPayloadTooLarge{Limit: 512}).Error())
	assert.Equal(t, "validation error: id - must be a UUID", (&ErrValidation{Field: "id", Message: "must be a UUID"}).Error())
	assert.Equal(t, "analysis storage is not configured", (&ErrStorageUnavailable{}).Error())
}
