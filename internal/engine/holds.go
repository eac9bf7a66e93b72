package engine

import (
	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// holdResolver сверяет "枠抑え" в календаре зала с рабочим календарем тренера.
// Создается на один вызов Check, поэтому настройки читаются заново каждый раз.
type holdResolver struct {
	matcher   *TitleMatcher
	work      []domain.Event
	overrides domain.OverrideMaps
}

func newHoldResolver(matcher *TitleMatcher, trainer []domain.Event, overrides domain.OverrideMaps) *holdResolver {
	work := make([]domain.Event, 0, len(trainer))
	for _, ev := range trainer {
		if ev.SourceKind == domain.SourceTrainerWork && !matcher.IsFacilityHold(ev.Title) {
			work = append(work, ev)
		}
	}

	return &holdResolver{
		matcher:   matcher,
		work:      work,
		overrides: overrides,
	}
}

// ignored returns true when the event is a facility hold that must not count.
// Not a hold -> false. Flag true -> always ignored. Otherwise the hold is
// respected only when a trainer work event overlaps the hold's own window.
func (h *holdResolver) ignored(ev domain.Event) bool {
	if !h.matcher.IsFacilityHold(ev.Title) {
		return false
	}
	if h.overrides.HoldIgnored(ev.ID) {
		return true
	}
	return !h.hasRealBooking(ev)
}

// hasRealBooking рабочее событие тренера пересекает окно "枠抑え"
func (h *holdResolver) hasRealBooking(hold domain.Event) bool {
	for _, w := range h.work {
		if w.ID != hold.ID && w.Overlaps(hold.Start, hold.End) {
			return true
		}
	}
	return false
}

// HasRealBooking exported for admin views listing facility holds
func HasRealBooking(matcher *TitleMatcher, trainer []domain.Event, hold domain.Event) bool {
	return newHoldResolver(matcher, trainer, domain.OverrideMaps{}).hasRealBooking(hold)
}
