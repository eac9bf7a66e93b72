package engine

import (
	"fmt"
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// Engine решает, можно ли записаться на слот.
// Хранит только правила; Check не имеет побочных эффектов и безопасен для конкурентного вызова.
type Engine struct {
	rules   domain.BusinessRules
	matcher *TitleMatcher
}

// New создает движок с проверенными правилами
func New(rules domain.BusinessRules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	return &Engine{
		rules:   rules,
		matcher: NewTitleMatcher(rules.DayOffKeywords, rules.UnavailableMarkers, rules.FacilityHoldTokens),
	}, nil
}

// Rules правила движка
func (e *Engine) Rules() domain.BusinessRules {
	return e.rules
}

// Matcher предикаты названий, общие для движка и админских представлений
func (e *Engine) Matcher() *TitleMatcher {
	return e.matcher
}

// Check evaluates the candidate start t at the location.
// Order, first denial wins: gate, day off, unavailable marker, trainer busy,
// travel conflict, location full.
func (e *Engine) Check(now, t time.Time, location domain.LocationID, snap *domain.Snapshot, overrides domain.OverrideMaps) (domain.Verdict, error) {
	if !snap.IsValidated() {
		return domain.Verdict{}, ErrSnapshotNotValidated
	}
	spec, ok := e.rules.Location(location)
	if !ok {
		return domain.Verdict{}, fmt.Errorf("%w: %q", ErrUnknownLocation, location)
	}

	t = t.In(e.rules.Timezone)
	now = now.In(e.rules.Timezone)

	if reason, denied := e.gate(now, t); denied {
		return domain.Deny(reason), nil
	}

	trainer := snap.TrainerEvents()
	slotStart, slotEnd := t, t.Add(domain.SessionDuration)

	if e.hasDayOff(t, trainer) {
		return domain.Deny(domain.ReasonOutsideHours), nil
	}
	if e.hasUnavailableMarker(slotStart, slotEnd, trainer) {
		return domain.Deny(domain.ReasonBlocked), nil
	}

	holds := newHoldResolver(e.matcher, trainer, overrides)

	if e.isTrainerBusy(slotStart, slotEnd, location, trainer, overrides, holds) {
		return domain.Deny(domain.ReasonTrainerBusy), nil
	}
	if e.hasTravelConflict(t, location, trainer, overrides, holds) {
		return domain.Deny(domain.ReasonTravelConflict), nil
	}
	if isLocationFull(slotStart, slotEnd, spec, snap.LocationEvents(location), holds) {
		return domain.Deny(domain.ReasonLocationFull), nil
	}

	return domain.Admit(), nil
}
