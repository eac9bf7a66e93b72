package compose_booking_request

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	composeBookingRequest "github.com/aceboy1016/ishihara-booking/internal/usecase/compose_booking_request"
)

// ComposeBookingRequestRequest HTTP request model
type ComposeBookingRequestRequest struct {
	Slots []SlotRequest `json:"slots" validate:"dive"`
}

// SlotRequest выбранный клиентом слот
type SlotRequest struct {
	Location string    `json:"location" validate:"required"`
	Start    time.Time `json:"start" validate:"required"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *ComposeBookingRequestRequest) ToUseCaseRequest() *composeBookingRequest.Request {
	slots := make([]domain.SelectedSlot, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = domain.SelectedSlot{
			Location: domain.LocationID(s.Location),
			Start:    s.Start,
		}
	}
	return &composeBookingRequest.Request{Slots: slots}
}

// BookingRequestResponse HTTP response model
type BookingRequestResponse struct {
	Message             string         `json:"message"`
	Slots               []SlotResponse `json:"slots"`
	Rejected            []SlotResponse `json:"rejected"`
	Degraded            bool           `json:"degraded"`
	SnapshotGeneratedAt *time.Time     `json:"snapshotGeneratedAt,omitempty"`
}

// SlotResponse слот заявки, для отклоненных с причиной
type SlotResponse struct {
	Location string `json:"location"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Reason   string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *composeBookingRequest.Response) *BookingRequestResponse {
	slots := make([]SlotResponse, len(resp.Request.Slots))
	for i, s := range resp.Request.Slots {
		slots[i] = toSlotResponse(s, "")
	}

	rejected := make([]SlotResponse, len(resp.Rejected))
	for i, s := range resp.Rejected {
		rejected[i] = toSlotResponse(s.SelectedSlot, s.Reason)
	}

	return &BookingRequestResponse{
		Message:             resp.Request.Message,
		Slots:               slots,
		Rejected:            rejected,
		Degraded:            resp.Degraded,
		SnapshotGeneratedAt: resp.SnapshotGeneratedAt,
	}
}

func toSlotResponse(s domain.SelectedSlot, reason domain.DenialReason) SlotResponse {
	return SlotResponse{
		Location: string(s.Location),
		Start:    s.Start.Format(time.RFC3339),
		End:      s.End().Format(time.RFC3339),
		Reason:   string(reason),
	}
}
