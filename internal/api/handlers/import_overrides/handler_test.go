package import_overrides

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
	"github.com/aceboy1016/ishihara-booking/pkg/logger"
)

type fakeService struct {
	got *models.ImportRequest
	err error
}

func (f *fakeService) Import(_ context.Context, req *models.ImportRequest) error {
	f.got = req
	return f.err
}

func put(svc *fakeService, kind, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/overrides/{kind}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/overrides/"+kind, strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := put(svc, "private-events", `{"p1":false,"p2":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &models.ImportRequest{
		Kind:   domain.OverridePrivateEvent,
		Values: map[string]bool{"p1": false, "p2": true},
	}, svc.got)
	assert.JSONEq(t, `{"kind":"private-event","imported":2}`, rec.Body.String())
}

func TestHandler_EmptyImportClearsKind(t *testing.T) {
	svc := &fakeService{}
	rec := put(svc, "facility-holds", `{}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.OverrideFacilityHold, svc.got.Kind)
	assert.Empty(t, svc.got.Values)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "unknown kind", kind: "settings", body: `{}`, wantStatus: http.StatusNotFound},
		{name: "not a map", kind: "private-events", body: `["p1"]`, wantStatus: http.StatusBadRequest},
		{name: "non bool value", kind: "private-events", body: `{"p1":"yes"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid id", kind: "private-events", body: `{"":true}`, err: overrides.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", kind: "facility-holds", body: `{"h1":true}`, err: errors.New("tx aborted"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := put(&fakeService{err: tt.err}, tt.kind, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
