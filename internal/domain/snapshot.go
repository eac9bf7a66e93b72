package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidEvent     = errors.New("domain: invalid event")
	ErrDuplicateEventID = errors.New("domain: duplicate event id")
	ErrMisplacedEvent   = errors.New("domain: event placed in wrong collection")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Snapshot неизменяемый набор событий всех календарей на момент генерации
// Создается только через NewSnapshot; нулевое значение считается невалидным
type Snapshot struct {
	generatedAt time.Time
	trainer     []Event
	locations   map[LocationID][]Event
	validated   bool
}

// NewSnapshot validates every event and freezes the collections.
// Trainer collection accepts trainer-work/trainer-private events only,
// each location collection accepts location events tagged with that location.
func NewSnapshot(generatedAt time.Time, trainer []Event, locations map[LocationID][]Event) (*Snapshot, error) {
	seen := make(map[string]struct{}, len(trainer))
	for _, ev := range trainer {
		if err := validateEvent(ev); err != nil {
			return nil, err
		}
		if !ev.SourceKind.IsTrainer() {
			return nil, fmt.Errorf("%w: event id=%q kind=%s in trainer collection", ErrMisplacedEvent, ev.ID, ev.SourceKind)
		}
		if _, dup := seen[ev.ID]; dup {
			return nil, fmt.Errorf("%w: trainer collection: %q", ErrDuplicateEventID, ev.ID)
		}
		seen[ev.ID] = struct{}{}
	}

	frozen := make(map[LocationID][]Event, len(locations))
	for loc, events := range locations {
		ids := make(map[string]struct{}, len(events))
		for _, ev := range events {
			if err := validateEvent(ev); err != nil {
				return nil, err
			}
			if ev.SourceKind != SourceLocation || ev.Location != loc {
				return nil, fmt.Errorf("%w: event id=%q kind=%s location=%q in collection %q",
					ErrMisplacedEvent, ev.ID, ev.SourceKind, ev.Location, loc)
			}
			if _, dup := ids[ev.ID]; dup {
				return nil, fmt.Errorf("%w: collection %q: %q", ErrDuplicateEventID, loc, ev.ID)
			}
			ids[ev.ID] = struct{}{}
		}
		frozen[loc] = sortedCopy(events)
	}

	return &Snapshot{
		generatedAt: generatedAt,
		trainer:     sortedCopy(trainer),
		locations:   frozen,
		validated:   true,
	}, nil
}

func validateEvent(ev Event) error {
	if err := validate.Struct(ev); err != nil {
		return fmt.Errorf("%w: id=%q: %v", ErrInvalidEvent, ev.ID, err)
	}
	return nil
}

func sortedCopy(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// IsValidated returns false for a nil or zero-value snapshot
func (s *Snapshot) IsValidated() bool {
	return s != nil && s.validated
}

// GeneratedAt момент генерации снимка
func (s *Snapshot) GeneratedAt() time.Time {
	return s.generatedAt
}

// TrainerEvents события обоих календарей тренера, отсортированные по началу.
// Срез только для чтения.
func (s *Snapshot) TrainerEvents() []Event {
	return s.trainer
}

// LocationEvents события календаря зала (только для чтения)
func (s *Snapshot) LocationEvents(id LocationID) []Event {
	return s.locations[id]
}

// Locations возвращает идентификаторы залов, присутствующих в снимке
func (s *Snapshot) Locations() []LocationID {
	ids := make([]LocationID, 0, len(s.locations))
	for id := range s.locations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Counts количество событий по коллекциям, ключ "trainer" для календарей тренера
func (s *Snapshot) Counts() map[string]int {
	counts := map[string]int{"trainer": len(s.trainer)}
	for id, events := range s.locations {
		counts[string(id)] = len(events)
	}
	return counts
}

// PrivateEvents события личного календаря тренера
func (s *Snapshot) PrivateEvents() []Event {
	var out []Event
	for _, ev := range s.trainer {
		if ev.SourceKind == SourceTrainerPrivate {
			out = append(out, ev)
		}
	}
	return out
}
