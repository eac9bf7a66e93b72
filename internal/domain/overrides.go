package domain

// OverrideKind вид ручной настройки администратора
type OverrideKind string

const (
	// OverridePrivateEvent значение false исключает личное событие из проверки занятости
	OverridePrivateEvent OverrideKind = "private-event"
	// OverrideFacilityHold значение true заставляет игнорировать "枠抑え" в календаре зала
	OverrideFacilityHold OverrideKind = "facility-hold"
)

// IsValid проверяет допустимость вида настройки
func (k OverrideKind) IsValid() bool {
	return k == OverridePrivateEvent || k == OverrideFacilityHold
}

// OverrideMaps снимок ручных настроек по event id.
// Отсутствие ключа означает значение по умолчанию.
type OverrideMaps struct {
	Private       map[string]bool
	FacilityHolds map[string]bool
}

// PrivateSuppressed returns true only for an explicit false for the event id
func (o OverrideMaps) PrivateSuppressed(eventID string) bool {
	v, ok := o.Private[eventID]
	return ok && !v
}

// HoldIgnored returns true only for an explicit true for the event id
func (o OverrideMaps) HoldIgnored(eventID string) bool {
	return o.FacilityHolds[eventID]
}

// Override одна сохраненная настройка
type Override struct {
	Kind    OverrideKind
	EventID string
	Value   bool
}
