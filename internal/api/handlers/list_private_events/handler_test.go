package list_private_events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceboy1016/ishihara-booking/internal/service/overrides"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
	"github.com/aceboy1016/ishihara-booking/pkg/logger"
)

type fakeService struct {
	resp *models.PrivateEventListResponse
	err  error
}

func (f *fakeService) ListPrivateEvents(context.Context) (*models.PrivateEventListResponse, error) {
	return f.resp, f.err
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeService
		wantStatus int
	}{
		{
			name:       "success",
			svc:        &fakeService{resp: &models.PrivateEventListResponse{Events: []models.PrivateEventResponse{{ID: "p1", Blocked: true}}}},
			wantStatus: http.StatusOK,
		},
		{name: "snapshot not loaded", svc: &fakeService{err: overrides.ErrSnapshotNotLoaded}, wantStatus: http.StatusServiceUnavailable},
		{name: "internal", svc: &fakeService{err: fmt.Errorf("%w: db", overrides.ErrInternal)}, wantStatus: http.StatusInternalServerError},
		{name: "unexpected", svc: &fakeService{err: errors.New("boom")}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(tt.svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/overrides/private-events", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var body models.PrivateEventListResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.Len(t, body.Events, 1)
				assert.Equal(t, "p1", body.Events[0].ID)
				assert.True(t, body.Events[0].Blocked)
			}
		})
	}
}
