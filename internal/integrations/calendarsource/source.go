package calendarsource

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// DefaultWindowDays глубина загрузки: горизонт записи плюс запас в один день
const DefaultWindowDays = 61

// Source собирает снимок всех календарей из ICS-лент
type Source struct {
	fetcher    ICSFetcher
	feeds      []Feed
	tagger     tagger
	tz         *time.Location
	windowDays int
	log        Logger
}

// NewSource создает источник и проверяет набор лент
func NewSource(fetcher ICSFetcher, feeds []Feed, locations []domain.LocationSpec, tz *time.Location, windowDays int, log Logger) (*Source, error) {
	if len(feeds) == 0 {
		return nil, ErrNoFeeds
	}
	if tz == nil {
		return nil, fmt.Errorf("%w: timezone is not set", ErrInternal)
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	known := make(map[domain.LocationID]struct{}, len(locations))
	for _, loc := range locations {
		known[loc.ID] = struct{}{}
	}
	ids := make(map[string]struct{}, len(feeds))
	for _, f := range feeds {
		if _, dup := ids[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate feed id %q", ErrInternal, f.ID)
		}
		ids[f.ID] = struct{}{}

		switch f.Kind {
		case domain.SourceTrainerWork, domain.SourceTrainerPrivate:
		case domain.SourceLocation:
			if _, ok := known[f.Location]; !ok {
				return nil, fmt.Errorf("%w: feed %q: unknown location %q", ErrInternal, f.ID, f.Location)
			}
		default:
			return nil, fmt.Errorf("%w: feed %q: unknown kind %q", ErrInternal, f.ID, f.Kind)
		}
	}

	return &Source{
		fetcher:    fetcher,
		feeds:      feeds,
		tagger:     tagger{locations: locations},
		tz:         tz,
		windowDays: windowDays,
		log:        log,
	}, nil
}

// Load загружает все ленты параллельно и строит снимок.
// Ошибка любой ленты отменяет всю загрузку: частичный снимок мог бы показать занятое время свободным.
func (s *Source) Load(ctx context.Context, now time.Time) (*domain.Snapshot, error) {
	local := now.In(s.tz)
	from := domain.DateOnly(local)
	to := local.Add(time.Duration(s.windowDays) * 24 * time.Hour)

	results := make([][]domain.Event, len(s.feeds))

	g, gctx := errgroup.WithContext(ctx)
	for i, feed := range s.feeds {
		i, feed := i, feed
		g.Go(func() error {
			events, err := s.loadFeed(gctx, feed, from, to)
			if err != nil {
				return err
			}
			results[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("Load: %v", err)
		return nil, err
	}

	var trainer []domain.Event
	locations := make(map[domain.LocationID][]domain.Event, len(s.tagger.locations))
	for _, loc := range s.tagger.locations {
		locations[loc.ID] = nil
	}

	for i, feed := range s.feeds {
		if feed.Kind == domain.SourceLocation {
			locations[feed.Location] = append(locations[feed.Location], results[i]...)
		} else {
			trainer = append(trainer, results[i]...)
		}
	}

	trainer = s.dedupe("trainer", trainer)
	for id, events := range locations {
		locations[id] = s.dedupe(string(id), events)
	}
	mirrored := mirrorWork(trainer, locations)

	snap, err := domain.NewSnapshot(now, trainer, locations)
	if err != nil {
		s.log.Error("Load: failed to build snapshot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	s.log.Info("Load: trainer=%d locations=%d mirrored=%d window=%s..%s",
		len(trainer), len(locations), mirrored, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	return snap, nil
}

func (s *Source) loadFeed(ctx context.Context, feed Feed, from, to time.Time) ([]domain.Event, error) {
	body, err := s.fetcher.FetchICS(ctx, feed)
	if err != nil {
		return nil, err
	}

	raw, err := parseICS(body, s.tz)
	if err != nil {
		return nil, fmt.Errorf("feed=%s: %w", feed.ID, err)
	}

	occ, err := expandEvents(raw, from, to, s.tz)
	if err != nil {
		return nil, fmt.Errorf("feed=%s: %w", feed.ID, err)
	}

	events := s.tagger.toEvents(feed, occ)

	// экземпляры нулевой длины ни с чем не пересекаются
	kept := events[:0]
	for _, ev := range events {
		if !ev.End.After(ev.Start) {
			s.log.Warn("loadFeed: feed=%s: skip zero-length event id=%s", feed.ID, ev.ID)
			continue
		}
		kept = append(kept, ev)
	}

	return kept, nil
}

func (s *Source) dedupe(collection string, events []domain.Event) []domain.Event {
	out, dropped := dedupeByID(events)
	for _, id := range dropped {
		s.log.Warn("dedupe: collection=%s: duplicate event id=%s dropped", collection, id)
	}
	return out
}
