package calendarsource

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/pkg/textnorm"
)

// tagger привязывает события к залам и комнатам по названию
type tagger struct {
	locations []domain.LocationSpec
}

// locationFor первый по порядку конфигурации зал, чей маркер или префикс есть в названии
func (t tagger) locationFor(title string) domain.LocationID {
	for _, loc := range t.locations {
		if textnorm.ContainsAny(title, loc.TagMarkers) || textnorm.HasPrefixAny(title, loc.TagPrefixes) {
			return loc.ID
		}
	}
	return ""
}

// roomFor комната зала по маркеру в названии; при нескольких совпадениях побеждает последняя
// Маркеры комнат сравниваются с учетом регистра ("A" и "a" разные)
func (t tagger) roomFor(id domain.LocationID, title string) string {
	spec, ok := t.spec(id)
	if !ok || len(spec.Rooms) == 0 {
		return ""
	}

	folded := width.Fold.String(title)
	room := ""
	for _, r := range spec.Rooms {
		if r.Marker != "" && strings.Contains(folded, width.Fold.String(r.Marker)) {
			room = r.Name
		}
	}
	return room
}

func (t tagger) spec(id domain.LocationID) (domain.LocationSpec, bool) {
	for _, loc := range t.locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return domain.LocationSpec{}, false
}

// toEvents переводит экземпляры ленты в события модели
func (t tagger) toEvents(feed Feed, occ []occurrence) []domain.Event {
	out := make([]domain.Event, 0, len(occ))
	for _, o := range occ {
		ev := domain.Event{
			ID:         o.ID,
			Start:      o.Start,
			End:        o.End,
			Title:      o.Summary,
			SourceKind: feed.Kind,
		}
		if feed.Kind == domain.SourceLocation {
			ev.Location = feed.Location
		} else {
			ev.Location = t.locationFor(o.Summary)
		}
		if ev.Location != "" {
			ev.Room = t.roomFor(ev.Location, o.Summary)
		}
		out = append(out, ev)
	}
	return out
}

// dedupeByID оставляет первое событие с каждым идентификатором
func dedupeByID(events []domain.Event) ([]domain.Event, []string) {
	seen := make(map[string]struct{}, len(events))
	out := events[:0:0]
	var dropped []string
	for _, ev := range events {
		if _, ok := seen[ev.ID]; ok {
			dropped = append(dropped, ev.ID)
			continue
		}
		seen[ev.ID] = struct{}{}
		out = append(out, ev)
	}
	return out, dropped
}

// mirrorWork дублирует рабочие записи тренера с привязкой к залу в календарь этого зала.
// Запись, уже присутствующая в календаре зала с тем же идентификатором, не дублируется.
func mirrorWork(trainer []domain.Event, locations map[domain.LocationID][]domain.Event) int {
	mirrored := 0
	for id, events := range locations {
		existing := make(map[string]struct{}, len(events))
		for _, ev := range events {
			existing[ev.ID] = struct{}{}
		}
		for _, ev := range trainer {
			if ev.SourceKind != domain.SourceTrainerWork || ev.Location != id {
				continue
			}
			if _, ok := existing[ev.ID]; ok {
				continue
			}
			mirror := ev
			mirror.SourceKind = domain.SourceLocation
			events = append(events, mirror)
			existing[ev.ID] = struct{}{}
			mirrored++
		}
		locations[id] = events
	}
	return mirrored
}
