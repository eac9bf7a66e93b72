package import_overrides

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aceboy1016/ishihara-booking/internal/api/handlers"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides"
)

const (
	msgUnknownKind        = "неизвестный вид настроек"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEventID     = "некорректный ID события"
)

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

// Handle PUT /api/v1/overrides/{kind}
// Тело: {"<eventId>": bool, ...}, заменяет все настройки этого вида
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	segment := mux.Vars(r)["kind"]
	kind, ok := handlers.OverrideKindFromPath(segment)
	if !ok {
		h.logger.Warn("PUT /overrides/{kind} - Unknown kind: %s", segment)
		handlers.RespondNotFound(w, msgUnknownKind)
		return
	}

	var req ImportOverridesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /overrides/{kind} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Import(r.Context(), req.ToServiceRequest(kind)); err != nil {
		switch {
		case errors.Is(err, overrides.ErrInvalidInput):
			h.logger.Warn("PUT /overrides/{kind} - Invalid event ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEventID)

		case errors.Is(err, overrides.ErrInvalidKind):
			h.logger.Warn("PUT /overrides/{kind} - Invalid kind: %s", kind)
			handlers.RespondNotFound(w, msgUnknownKind)

		default:
			h.logger.Error("PUT /overrides/{kind} - Failed to import: kind=%s, error=%v", kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /overrides/{kind} - Overrides imported: kind=%s, count=%d", kind, len(req))
	handlers.RespondJSON(w, http.StatusOK, &ImportOverridesResponse{Kind: kind, Imported: len(req)})
}
