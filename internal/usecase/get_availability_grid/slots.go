package get_availability_grid

import (
	"fmt"
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/pkg/types"
)

// generateStartTimes строки сетки: каждые SlotStep от открытия до последнего старта будним днем
// В короткие дни поздние строки остаются в сетке и получают отказ outside-hours
func generateStartTimes(hours domain.BusinessHours) ([]types.TimeString, error) {
	step := int(domain.SlotStep / time.Minute)
	session := int(domain.SessionDuration / time.Minute)

	latest, err := hours.WeekdayClose.AddMinutes(-session)
	if err != nil {
		return nil, err
	}

	starts := make([]types.TimeString, 0)
	current := hours.Open
	for !current.IsAfter(latest) {
		starts = append(starts, current)
		current, err = current.AddMinutes(step)
		if err != nil {
			// последний старт у самой полуночи
			break
		}
	}

	if len(starts) == 0 {
		return nil, fmt.Errorf("no slot fits between %s and %s", hours.Open, hours.WeekdayClose)
	}
	return starts, nil
}

// dates календарные даты диапазона включительно
func dates(from, to time.Time) []time.Time {
	out := make([]time.Time, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// closedDay день, в котором каждый слот закрыт по умолчанию (данные не подтверждены)
func closedDay(date time.Time, isShort bool, starts []types.TimeString) domain.GridDay {
	day := domain.GridDay{Date: date, IsShort: isShort, Slots: make([]domain.GridSlot, 0, len(starts))}
	for _, ts := range starts {
		day.Slots = append(day.Slots, domain.GridSlot{
			Start:     ts.On(date),
			StartTime: ts,
			Verdict:   domain.Deny(domain.ReasonOutsideHours),
		})
	}
	return day
}
