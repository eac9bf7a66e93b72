package get_availability_grid

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/aceboy1016/ishihara-booking/internal/api/handlers"
	getAvailabilityGrid "github.com/aceboy1016/ishihara-booking/internal/usecase/get_availability_grid"
)

const (
	msgMissingLocationID = "ID зала обязателен"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "некорректный диапазон дат"
	msgLocationNotFound  = "зал не найден"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityGridUseCase
	tz      *time.Location
	logger  Logger
}

// NewHandler tz часовой пояс, в котором трактуются даты from/to
func NewHandler(useCase GetAvailabilityGridUseCase, tz *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		tz:      tz,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/availability-grid
// Query params: from, to (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]
	if locationID == "" {
		h.logger.Warn("GET /locations/{id}/availability-grid - Missing location ID")
		handlers.RespondBadRequest(w, msgMissingLocationID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	useCaseReq, err := ToUseCaseRequest(locationID, fromStr, toStr, h.tz)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/availability-grid - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailabilityGrid.ErrUnknownLocation):
			h.logger.Warn("GET /locations/{id}/availability-grid - Location not found: location=%s", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getAvailabilityGrid.ErrInvalidRange):
			h.logger.Warn("GET /locations/{id}/availability-grid - Invalid range: from=%s, to=%s, error=%v", fromStr, toStr, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailabilityGrid.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/availability-grid - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /locations/{id}/availability-grid - Failed to build grid: location=%s, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/availability-grid - Grid built: location=%s, days=%d, degraded=%t",
		locationID, len(result.Days), result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
