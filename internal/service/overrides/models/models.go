package models

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// Request модели

// SetPrivateEventRequest блокирует личное событие или исключает его из проверки
type SetPrivateEventRequest struct {
	EventID string
	Blocked bool
}

// SetFacilityHoldRequest помечает "枠抑え" как игнорируемый или учитываемый
type SetFacilityHoldRequest struct {
	EventID string
	Ignored bool
}

// ImportRequest полная замена настроек одного вида
type ImportRequest struct {
	Kind   domain.OverrideKind
	Values map[string]bool
}

// Response модели

// PrivateEventResponse личное событие тренера с флагом блокировки
type PrivateEventResponse struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	AllDay  bool      `json:"allDay"`
	Blocked bool      `json:"blocked"` // отсутствие настройки = блокирует
}

// PrivateEventListResponse список личных событий
type PrivateEventListResponse struct {
	Events []PrivateEventResponse `json:"events"`
}

// FacilityHoldResponse "枠抑え" в календаре зала
type FacilityHoldResponse struct {
	ID             string            `json:"id"`
	Location       domain.LocationID `json:"location"`
	Room           string            `json:"room,omitempty"`
	Title          string            `json:"title"`
	Start          time.Time         `json:"start"`
	End            time.Time         `json:"end"`
	Ignored        bool              `json:"ignored"`        // ручная настройка
	HasRealBooking bool              `json:"hasRealBooking"` // в рабочем календаре есть запись на это время
}

// FacilityHoldListResponse список "枠抑え" по всем залам
type FacilityHoldListResponse struct {
	Holds []FacilityHoldResponse `json:"holds"`
}

// ResetResponse результат сброса настроек
type ResetResponse struct {
	Kind    domain.OverrideKind `json:"kind"`
	Deleted int64               `json:"deleted"`
}
