package get_snapshot_status

import (
	"net/http"

	"github.com/aceboy1016/ishihara-booking/internal/api/handlers"
)

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

// Handle GET /api/v1/snapshot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := h.service.Status()

	h.logger.Info("GET /snapshot - Status retrieved: loaded=%t", result.Loaded)
	handlers.RespondJSON(w, http.StatusOK, result)
}
