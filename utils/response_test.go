package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, 201, M{"success": true})

	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantField  string
	}{
		{
			"validation with field",
			apperr.Validation("customer_phone", "customer phone is required"),
			400, "customer phone is required", "customer_phone",
		},
		{
			"validation without field",
			apperr.Validation("", "invalid request body"),
			400, "invalid request body", "",
		},
		{
			"not found",
			apperr.NotFound("tour not found"),
			404, "tour not found", "",
		},
		{
			"conflict",
			apperr.Conflict("a tour with this title already exists"),
			400, "a tour with this title already exists", "",
		},
		{
			"invariant",
			apperr.Invariant("cannot delete the last admin account"),
			400, "cannot delete the last admin account", "",
		},
		{
			"store hides the cause",
			apperr.Store(errors.New("connection reset by peer")),
			500, "something went wrong, please try again", "",
		},
		{
			"unclassified error",
			errors.New("boom"),
			500, "something went wrong, please try again", "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondWithError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["message"])
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, body["field"])
			} else {
				assert.NotContains(t, body, "field")
			}
			assert.NotContains(t, body["message"], "connection reset")
		})
	}
}
