package reset_overrides

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aceboy1016/ishihara-booking/internal/api/handlers"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides"
)

const msgUnknownKind = "неизвестный вид настроек"

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

// Handle DELETE /api/v1/overrides/{kind}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	segment := mux.Vars(r)["kind"]
	kind, ok := handlers.OverrideKindFromPath(segment)
	if !ok {
		h.logger.Warn("DELETE /overrides/{kind} - Unknown kind: %s", segment)
		handlers.RespondNotFound(w, msgUnknownKind)
		return
	}

	result, err := h.service.Reset(r.Context(), kind)
	if err != nil {
		switch {
		case errors.Is(err, overrides.ErrInvalidKind):
			h.logger.Warn("DELETE /overrides/{kind} - Invalid kind: %s", kind)
			handlers.RespondNotFound(w, msgUnknownKind)

		default:
			h.logger.Error("DELETE /overrides/{kind} - Failed to reset: kind=%s, error=%v", kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /overrides/{kind} - Overrides reset: kind=%s, deleted=%d", kind, result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
