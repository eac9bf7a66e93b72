package compose_booking_request

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// MaxSlotsPerRequest ограничение числа кандидатов в одной заявке
const MaxSlotsPerRequest = 10

// Request модель запроса на составление заявки
type Request struct {
	Slots []domain.SelectedSlot
}

// Response модель ответа с текстом заявки
type Response struct {
	Request             domain.BookingRequest // Message пуст, если ни один слот не доступен
	Rejected            []domain.RejectedSlot
	Degraded            bool
	SnapshotGeneratedAt *time.Time
}
