package domain

import "time"

// SourceKind календарь, из которого получено событие
type SourceKind string

const (
	SourceTrainerWork    SourceKind = "trainer-work"
	SourceTrainerPrivate SourceKind = "trainer-private"
	SourceLocation       SourceKind = "location"
)

// IsTrainer returns true for both trainer calendars
func (k SourceKind) IsTrainer() bool {
	return k == SourceTrainerWork || k == SourceTrainerPrivate
}

// LocationID идентификатор зала ("ebisu", "hanzomon")
type LocationID string

// Event a single normalized calendar entry, identical in shape for every source.
// All-day entries are represented as [local midnight, 23:59:59] of one day.
type Event struct {
	ID         string     `json:"id" validate:"required"`
	Start      time.Time  `json:"start" validate:"required"`
	End        time.Time  `json:"end" validate:"required,gtfield=Start"`
	Title      string     `json:"title,omitempty"`
	Location   LocationID `json:"location,omitempty"` // пусто = событие без привязки к залу
	Room       string     `json:"room,omitempty"`     // только для залов с именованными комнатами
	SourceKind SourceKind `json:"sourceKind" validate:"required,oneof=trainer-work trainer-private location"`
}

// Overlaps проверяет пересечение полуинтервалов [Start, End) и [start, end)
// Касание границ пересечением не считается
func (e Event) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}

// IsAllDayOn returns true when the event spans 00:00..23:59 of the given local date
func (e Event) IsAllDayOn(date time.Time, loc *time.Location) bool {
	start := e.Start.In(loc)
	end := e.End.In(loc)

	if start.Hour() != 0 || start.Minute() != 0 {
		return false
	}
	if end.Hour() != 23 || end.Minute() != 59 {
		return false
	}

	return SameDay(start, date.In(loc)) && SameDay(end, date.In(loc))
}

// HasLocation returns true when the event is tied to a physical location
func (e Event) HasLocation() bool {
	return e.Location != ""
}

// SameDay проверяет, что два момента относятся к одной календарной дате (в своих локациях)
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly обнуляет время, сохраняя локацию
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
