package engine

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// gate проверяет временную допустимость кандидата: минимальный запас,
// горизонт записи и рабочие часы. now и t уже в часовом поясе правил.
func (e *Engine) gate(now, t time.Time) (domain.DenialReason, bool) {
	if !t.After(now.Add(e.rules.MinLeadTime)) {
		return domain.ReasonTooSoon, true
	}

	// слот открывается ровно за HorizonMonths календарных месяцев до своей даты
	floor := domain.DateOnly(t).AddDate(0, -e.rules.HorizonMonths, 0)
	if domain.DateOnly(now).Before(floor) {
		return domain.ReasonTooFar, true
	}

	if !e.withinHours(t) {
		return domain.ReasonOutsideHours, true
	}

	return "", false
}

// withinHours сессия целиком помещается в рабочие часы дня.
// Сравнение с точностью до секунды: 21:00:30 уже не укладывается в 22:00.
func (e *Engine) withinHours(t time.Time) bool {
	start := clockOffset(t)
	open := time.Duration(e.rules.Hours.Open.Minutes()) * time.Minute
	closing := time.Duration(e.rules.CloseFor(t).Minutes()) * time.Minute

	return start >= open && start+domain.SessionDuration <= closing
}

// clockOffset время от полуночи по часам, без учета перехода на летнее время
func clockOffset(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
