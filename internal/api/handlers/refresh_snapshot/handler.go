package refresh_snapshot

import (
	"errors"
	"net/http"

	"github.com/aceboy1016/ishihara-booking/internal/api/handlers"
	"github.com/aceboy1016/ishihara-booking/internal/service/snapshot"
)

const msgRefreshFailed = "не удалось загрузить календари, действует предыдущий снимок"

type Handler struct {
	service SnapshotService
	logger  Logger
}

func NewHandler(service SnapshotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/snapshot/refresh
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Refresh(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, snapshot.ErrRefreshFailed):
			h.logger.Warn("POST /snapshot/refresh - Calendar fetch failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgRefreshFailed)

		default:
			h.logger.Error("POST /snapshot/refresh - Failed to refresh: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /snapshot/refresh - Snapshot refreshed: counts=%v", result.Counts)
	handlers.RespondJSON(w, http.StatusOK, result)
}
