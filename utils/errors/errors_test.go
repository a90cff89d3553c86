package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorMessage(t *testing.T) {
	err := NewAPIError("NOT_FOUND", "POI non trovato", http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND: POI non trovato", err.Error())
}

func TestValidationIsBadRequest(t *testing.T) {
	err := Validation("Category is required")
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
}

func TestWrapPassesAPIErrorsThrough(t *testing.T) {
	original := ErrNotFound
	wrapped := Wrap(original, "DB_ERROR", "should be ignored", http.StatusInternalServerError)
	assert.Same(t, original, wrapped)
}

func TestWrapAttachesDetails(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	wrapped := Wrap(cause, "DB_ERROR", "Failed to load POIs", http.StatusInternalServerError)
	assert.Equal(t, "DB_ERROR", wrapped.Code)
	assert.Equal(t, "connection refused", wrapped.Details)
}
