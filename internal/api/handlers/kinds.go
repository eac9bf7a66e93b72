package handlers

import "github.com/aceboy1016/ishihara-booking/internal/domain"

// Сегменты пути для видов ручных настроек
const (
	KindPathPrivateEvents = "private-events"
	KindPathFacilityHolds = "facility-holds"
)

// OverrideKindFromPath сопоставляет сегмент пути /overrides/{kind} виду настройки
func OverrideKindFromPath(segment string) (domain.OverrideKind, bool) {
	switch segment {
	case KindPathPrivateEvents:
		return domain.OverridePrivateEvent, true
	case KindPathFacilityHolds:
		return domain.OverrideFacilityHold, true
	}
	return "", false
}
