package engine

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// hasTravelConflict событие тренера в другом зале ближе буфера на переезд.
// Окно [t-буфер, t+сессия+буфер). События без зала никогда не дают конфликт.
func (e *Engine) hasTravelConflict(t time.Time, location domain.LocationID, trainer []domain.Event, overrides domain.OverrideMaps, holds *holdResolver) bool {
	windowStart := t.Add(-domain.TravelBuffer)
	windowEnd := t.Add(domain.SessionDuration + domain.TravelBuffer)

	for _, ev := range trainer {
		if !ev.HasLocation() || ev.Location == location {
			continue
		}
		if !ev.Overlaps(windowStart, windowEnd) {
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
