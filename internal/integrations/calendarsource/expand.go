package calendarsource

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// maxOccurrencesPerEvent защита от бесконечных правил повторения
const maxOccurrencesPerEvent = 1000

// occurrence конкретный экземпляр события в окне загрузки
type occurrence struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
}

// expandEvents разворачивает повторения (RRULE, EXDATE, RECURRENCE-ID) и делит
// многодневные события на весь день по дням. Возвращаются только экземпляры,
// пересекающие окно [from, to).
func expandEvents(events []vevent, from, to time.Time, tz *time.Location) ([]occurrence, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: window end before start", ErrInternal)
	}

	overridesByUID := make(map[string][]vevent)
	hasBase := make(map[string]bool)
	for _, ev := range events {
		if ev.Recurrence != nil {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
		} else {
			hasBase[ev.UID] = true
		}
	}

	out := make([]occurrence, 0, len(events))
	for _, ev := range events {
		if ev.Recurrence != nil {
			// измененный экземпляр без базового события
			if !hasBase[ev.UID] && !ev.Cancelled {
				out = appendInstance(out, ev, ev.Start, ev.End, instanceID(ev, *ev.Recurrence), from, to, tz)
			}
			continue
		}
		if ev.Cancelled {
			continue
		}

		if ev.RRule == "" {
			out = appendInstance(out, ev, ev.Start, ev.End, ev.UID, from, to, tz)
			continue
		}

		occ, err := expandRecurring(ev, overridesByUID[ev.UID], from, to, tz)
		if err != nil {
			return nil, err
		}
		out = append(out, occ...)
	}

	return out, nil
}

func expandRecurring(ev vevent, overrides []vevent, from, to time.Time, tz *time.Location) ([]occurrence, error) {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		return nil, fmt.Errorf("%w: uid=%s: RRULE %q: %v", ErrParse, ev.UID, ev.RRule, err)
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	duration := ev.End.Sub(ev.Start)
	// экземпляры, начавшиеся до окна, но еще идущие, тоже нужны
	starts := set.Between(from.Add(-duration).In(ev.Start.Location()), to.In(ev.Start.Location()), true)
	if len(starts) > maxOccurrencesPerEvent {
		return nil, fmt.Errorf("%w: uid=%s: more than %d occurrences in window", ErrParse, ev.UID, maxOccurrencesPerEvent)
	}

	// число дополнительных дней у многодневного события на весь день
	spanDays := 0
	if ev.AllDay && !ev.AllDayEnd.IsZero() {
		spanDays = daysBetween(ev.Start, ev.AllDayEnd)
	}

	out := make([]occurrence, 0, len(starts))
	for _, start := range starts {
		instance := ev
		instStart, instEnd := start, start.Add(duration)
		if ev.AllDay {
			instance.AllDayEnd = start.AddDate(0, 0, spanDays)
		}

		if o, ok := findOverride(overrides, start); ok {
			if o.Cancelled {
				continue
			}
			instance = o
			instStart, instEnd = o.Start, o.End
		}

		out = appendInstance(out, instance, instStart, instEnd, instanceID(ev, start), from, to, tz)
	}

	return out, nil
}

func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

func findOverride(overrides []vevent, start time.Time) (vevent, bool) {
	for _, o := range overrides {
		if o.Recurrence != nil && o.Recurrence.Equal(start) {
			return o, true
		}
	}
	return vevent{}, false
}

// instanceID стабильный идентификатор экземпляра повторяющегося события
func instanceID(ev vevent, originalStart time.Time) string {
	if ev.AllDay {
		return ev.UID + "_" + originalStart.Format(icsDate)
	}
	return ev.UID + "_" + originalStart.UTC().Format(icsDateTimeUTC)
}

// appendInstance добавляет экземпляр, разбивая многодневное событие на весь день по дням
func appendInstance(out []occurrence, ev vevent, start, end time.Time, id string, from, to time.Time, tz *time.Location) []occurrence {
	if !ev.AllDay {
		if start.Before(to) && end.After(from) {
			out = append(out, occurrence{ID: id, Summary: ev.Summary, Start: start.In(tz), End: end.In(tz)})
		}
		return out
	}

	first := dateIn(start, tz)
	last := first
	if !ev.AllDayEnd.IsZero() {
		last = dateIn(ev.AllDayEnd, tz)
	}

	multiDay := last.After(first)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		dayStart, dayEnd := day, endOfDay(day)
		if !dayStart.Before(to) || !dayEnd.After(from) {
			continue
		}
		dayID := id
		if multiDay {
			dayID = ev.UID + "_" + day.Format(icsDate)
		}
		out = append(out, occurrence{ID: dayID, Summary: ev.Summary, Start: dayStart, End: dayEnd})
	}
	return out
}

// dateIn полночь календарной даты момента; даты ICS (VALUE=DATE) не сдвигаются между поясами
func dateIn(t time.Time, tz *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, tz)
}
