package set_facility_hold

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

// Handle PUT /api/v1/overrides/facility-holds/{eventId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	var req SetFacilityHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /overrides/facility-holds/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetFacilityHold(r.Context(), req.ToServiceRequest(eventID)); err != nil {
		switch {
		case errors.Is(err, overrides.ErrInvalidInput):
			h.logger.Warn("PUT /overrides/facility-holds/{id} - Invalid event ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEventID)

		default:
			h.logger.Error("PUT /overrides/facility-holds/{id} - Failed to save flag: event_id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /overrides/facility-holds/{id} - Flag saved: event_id=%s, ignored=%t", eventID, *req.Ignored)
	handlers.RespondJSON(w, http.StatusOK, &FacilityHoldFlagResponse{ID: eventID, Ignored: *req.Ignored})
}
