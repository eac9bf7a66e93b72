package domain

import (
	"fmt"
	"sort"
	"time"
)

// HolidayCalendar список праздничных дат (YYYY-MM-DD), задаваемый конфигурацией
type HolidayCalendar struct {
	dates map[string]struct{}
}

// NewHolidayCalendar разбирает даты в формате YYYY-MM-DD
func NewHolidayCalendar(dates []string) (HolidayCalendar, error) {
	cal := HolidayCalendar{dates: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		parsed, err := time.Parse(DateFormat, d)
		if err != nil {
			return HolidayCalendar{}, fmt.Errorf("%w: holiday %q: %v", ErrInvalidRules, d, err)
		}
		cal.dates[parsed.Format(DateFormat)] = struct{}{}
	}
	return cal, nil
}

// IsHoliday сравнивает календарную дату момента в его локации
func (c HolidayCalendar) IsHoliday(date time.Time) bool {
	_, ok := c.dates[date.Format(DateFormat)]
	return ok
}

// Len количество праздников
func (c HolidayCalendar) Len() int {
	return len(c.dates)
}

// Dates отсортированный список праздников
func (c HolidayCalendar) Dates() []string {
	out := make([]string, 0, len(c.dates))
	for d := range c.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
