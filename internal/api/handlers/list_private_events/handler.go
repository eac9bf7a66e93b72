package list_private_events

import (
	"errors"
	"net/http"

	"github.com/aceboy1016/ishihara-booking/internal/api/handlers"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides"
)

const msgSnapshotNotLoaded = "календари еще не загружены"

type Handler struct {
	service OverrideService
	logger  Logger
}

func NewHandler(service OverrideService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/overrides/private-events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPrivateEvents(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, overrides.ErrSnapshotNotLoaded):
			h.logger.Warn("GET /overrides/private-events - Snapshot not loaded")
			handlers.RespondServiceUnavailable(w, msgSnapshotNotLoaded)

		default:
			h.logger.Error("GET /overrides/private-events - Failed to list events: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /overrides/private-events - Events retrieved successfully: count=%d", len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, result)
}
