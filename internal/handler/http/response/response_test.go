package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) Body {
	t.Helper()
	var body Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessWithMeta_DerivesTotalPages(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a", "b"}, &Meta{Page: 1, Limit: 10, TotalItems: 25})

	assert.Equal(t, 200, rec.Code)
	body := decodeBody(t, rec)
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 3, body.Meta.TotalPages)
}

func TestSuccessWithMeta_NoLimitLeavesTotalPagesZero(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, nil, &Meta{TotalItems: 7})

	body := decodeBody(t, rec)
	require.NotNil(t, body.Meta)
	assert.Equal(t, int64(7), body.Meta.TotalItems)
	assert.Equal(t, 0, body.Meta.TotalPages)
}

func TestConflict_WritesErrorEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Conflict(rec, "Already checked in today")

	assert.Equal(t, 409, rec.Code)
	body := decodeBody(t, rec)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "CONFLICT", body.Error.Code)
	assert.Equal(t, "Already checked in today", body.Error.Message)
}

func TestValidationError_CarriesFieldDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"email": "must be a valid email address"})

	assert.Equal(t, 422, rec.Code)
	body := decodeBody(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "must be a valid email address", body.Error.Details["email"])
}
