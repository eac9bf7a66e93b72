package get_availability_grid

import (
	"fmt"
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	return nil
}

// resolveRange приводит диапазон к окну записи [today, today + horizonMonths]
// Границы переводятся в часовой пояс правил как календарные даты
func resolveRange(from, to, now time.Time, horizonMonths int, tz *time.Location) (time.Time, time.Time, error) {
	today := domain.DateOnly(now.In(tz))
	horizonEnd := today.AddDate(0, horizonMonths, 0)

	start, end := today, horizonEnd
	if !from.IsZero() {
		start = asDate(from, tz)
	}
	if !to.IsZero() {
		end = asDate(to, tz)
	}

	if start.Before(today) {
		start = today
	}
	if end.After(horizonEnd) {
		end = horizonEnd
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s..%s outside %s..%s", ErrInvalidRange,
			start.Format(domain.DateFormat), end.Format(domain.DateFormat),
			today.Format(domain.DateFormat), horizonEnd.Format(domain.DateFormat))
	}

	return start, end, nil
}

func asDate(t time.Time, tz *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, tz)
}
