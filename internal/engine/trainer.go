package engine

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// hasDayOff событие тренера на весь день кандидата с ключевым словом выходного.
// Учитываются все события тренера, включая подавленные личные.
func (e *Engine) hasDayOff(t time.Time, trainer []domain.Event) bool {
	for _, ev := range trainer {
		if ev.IsAllDayOn(t, e.rules.Timezone) && e.matcher.IsDayOffEvent(ev.Title) {
			return true
		}
	}
	return false
}

// hasUnavailableMarker пересекающееся со слотом событие с отметкой "予約不可"
func (e *Engine) hasUnavailableMarker(slotStart, slotEnd time.Time, trainer []domain.Event) bool {
	for _, ev := range trainer {
		if ev.Overlaps(slotStart, slotEnd) && e.matcher.IsUnavailableMarker(ev.Title) {
			return true
		}
	}
	return false
}

// isTrainerBusy обычная занятость: рабочие события и неподавленные личные.
// События в другом зале относятся к конфликту переезда: его окно шире слота.
func (e *Engine) isTrainerBusy(slotStart, slotEnd time.Time, location domain.LocationID, trainer []domain.Event, overrides domain.OverrideMaps, holds *holdResolver) bool {
	for _, ev := range trainer {
		if !ev.Overlaps(slotStart, slotEnd) {
			continue
		}
		if ev.HasLocation() && ev.Location != location {
			continue
		}
		if isSuppressedPrivate(ev, overrides) {
			continue
		}
		if holds.ignored(ev) {
			continue
		}
		return true
	}
	return false
}

func isSuppressedPrivate(ev domain.Event, overrides domain.OverrideMaps) bool {
	return ev.SourceKind == domain.SourceTrainerPrivate && overrides.PrivateSuppressed(ev.ID)
}
