package compose_booking_request

import (
	"errors"
	"net/http"

	"github.com/aceboy1016/ishihara-booking/internal/api/handlers"
	composeBookingRequest "github.com/aceboy1016/ishihara-booking/internal/usecase/compose_booking_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNoSlots            = "не выбран ни один слот"
	msgTooManySlots       = "выбрано слишком много слотов"
	msgInvalidSlot        = "некорректный слот"
	msgLocationNotFound   = "зал не найден"
)

type Handler struct {
	useCase ComposeBookingRequestUseCase
	logger  Logger
}

func NewHandler(useCase ComposeBookingRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ComposeBookingRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, composeBookingRequest.ErrNoSlots):
			h.logger.Warn("POST /booking-requests - No slots selected")
			handlers.RespondBadRequest(w, msgNoSlots)

		case errors.Is(err, composeBookingRequest.ErrTooManySlots):
			h.logger.Warn("POST /booking-requests - Too many slots: count=%d", len(req.Slots))
			handlers.RespondBadRequest(w, msgTooManySlots)

		case errors.Is(err, composeBookingRequest.ErrInvalidInput):
			h.logger.Warn("POST /booking-requests - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, composeBookingRequest.ErrUnknownLocation):
			h.logger.Warn("POST /booking-requests - Location not found: %v", err)
			handlers.RespondNotFound(w, msgLocationNotFound)

		default:
			h.logger.Error("POST /booking-requests - Failed to compose request: slots=%d, error=%v", len(req.Slots), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-requests - Request composed: accepted=%d, rejected=%d, degraded=%t",
		len(result.Request.Slots), len(result.Rejected), result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
