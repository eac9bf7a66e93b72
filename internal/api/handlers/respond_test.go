package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondBadRequest(rec, "плохо")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusBadRequest, Message: "плохо"}, body)

	rec = httptest.NewRecorder()
	RespondServiceUnavailable(rec, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), msgServiceUnavailable)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name  string `json:"name" validate:"required"`
		Count int    `json:"count" validate:"gte=0"`
	}

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "valid", payload: `{"name":"a","count":1}`},
		{name: "missing required", payload: `{"count":1}`, wantErr: true},
		{name: "negative", payload: `{"name":"a","count":-1}`, wantErr: true},
		{name: "unknown field", payload: `{"name":"a","extra":true}`, wantErr: true},
		{name: "malformed", payload: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))
			var v body
			err := DecodeJSON(r, &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecodeJSON_Map(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"e1":true,"e2":false}`))
	var v map[string]bool
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, map[string]bool{"e1": true, "e2": false}, v)
}

func TestOverrideKindFromPath(t *testing.T) {
	kind, ok := OverrideKindFromPath("private-events")
	assert.True(t, ok)
	assert.Equal(t, domain.OverridePrivateEvent, kind)

	kind, ok = OverrideKindFromPath("facility-holds")
	assert.True(t, ok)
	assert.Equal(t, domain.OverrideFacilityHold, kind)

	_, ok = OverrideKindFromPath("private-event")
	assert.False(t, ok)
}
