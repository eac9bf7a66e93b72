package check_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aceboy1016/ishihara-booking/internal/api/handlers"
	checkAvailability "github.com/aceboy1016/ishihara-booking/internal/usecase/check_availability"
)

const (
	msgMissingLocationID = "ID зала обязателен"
	msgMissingTime       = "время обязательно"
	msgInvalidTime       = "некорректный формат времени, ожидается RFC3339"
	msgLocationNotFound  = "зал не найден"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/availability
// Query params: time (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]
	if locationID == "" {
		h.logger.Warn("GET /locations/{id}/availability - Missing location ID")
		handlers.RespondBadRequest(w, msgMissingLocationID)
		return
	}

	timeStr := r.URL.Query().Get("time")
	if timeStr == "" {
		h.logger.Warn("GET /locations/{id}/availability - Missing time: location=%s", locationID)
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	useCaseReq, err := ToUseCaseRequest(locationID, timeStr)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/availability - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrUnknownLocation):
			h.logger.Warn("GET /locations/{id}/availability - Location not found: location=%s", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/availability - Invalid input: location=%s, error=%v", locationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /locations/{id}/availability - Failed to check slot: location=%s, time=%s, error=%v",
				locationID, timeStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/availability - Slot checked: location=%s, time=%s, outcome=%s, degraded=%t",
		locationID, timeStr, result.Verdict.Outcome(), result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
