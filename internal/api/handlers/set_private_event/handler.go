package set_private_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aceboy1016/ishihara-booking/internal/api/handlers"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides"
)

const (
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

// Handle PUT /api/v1/overrides/private-events/{eventId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	var req SetPrivateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /overrides/private-events/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetPrivateEvent(r.Context(), req.ToServiceRequest(eventID)); err != nil {
		switch {
		case errors.Is(err, overrides.ErrInvalidInput):
			h.logger.Warn("PUT /overrides/private-events/{id} - Invalid event ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEventID)

		default:
			h.logger.Error("PUT /overrides/private-events/{id} - Failed to save flag: event_id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /overrides/private-events/{id} - Flag saved: event_id=%s, blocked=%t", eventID, *req.Blocked)
	handlers.RespondJSON(w, http.StatusOK, &PrivateEventFlagResponse{ID: eventID, Blocked: *req.Blocked})
}
