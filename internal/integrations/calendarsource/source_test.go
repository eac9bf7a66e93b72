package calendarsource

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/pkg/logger"
)

type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string][]byte
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) FetchICS(_ context.Context, feed Feed) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, feed.ID)
	f.mu.Unlock()

	if err, ok := f.errs[feed.ID]; ok {
		return nil, err
	}
	return f.bodies[feed.ID], nil
}

func testFeeds() []Feed {
	return []Feed{
		{ID: "work", URL: "https://calendar.example/work.ics", Kind: domain.SourceTrainerWork},
		{ID: "private", URL: "https://calendar.example/private.ics", Kind: domain.SourceTrainerPrivate},
		{ID: "ebisu", URL: "https://calendar.example/ebisu.ics", Kind: domain.SourceLocation, Location: "ebisu"},
		{ID: "hanzomon", URL: "https://calendar.example/hanzomon.ics", Kind: domain.SourceLocation, Location: "hanzomon"},
	}
}

func testBodies() map[string][]byte {
	return map[string][]byte{
		"work": calendar(`
UID:w1
SUMMARY:恵 Aルーム 田中様
DTSTART:20261006T100000
DTEND:20261006T110000`, `
UID:w2
SUMMARY:半 佐藤様
DTSTART:20261006T140000
DTEND:20261006T150000`, `
UID:w2
SUMMARY:半 佐藤様 (重複)
DTSTART:20261006T140000
DTEND:20261006T150000`),
		"private": calendar(`
UID:p1
SUMMARY:歯医者
DTSTART:20261006T120000
DTEND:20261006T130000`, `
UID:p-zero
SUMMARY:メモ
DTSTART:20261006T120000`),
		"ebisu": calendar(`
UID:e1
SUMMARY:Bルーム 予約
DTSTART:20261006T100000
DTEND:20261006T110000`),
		"hanzomon": calendar(),
	}
}

func TestNewSource_Validation(t *testing.T) {
	log := logger.NewNop()
	fetcher := &fakeFetcher{}

	_, err := NewSource(fetcher, nil, testLocations(), jst, 0, log)
	assert.ErrorIs(t, err, ErrNoFeeds)

	_, err = NewSource(fetcher, []Feed{{ID: "x", Kind: domain.SourceLocation, Location: "shibuya"}}, testLocations(), jst, 0, log)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = NewSource(fetcher, []Feed{{ID: "x", Kind: domain.SourceTrainerWork}, {ID: "x", Kind: domain.SourceTrainerPrivate}}, testLocations(), jst, 0, log)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = NewSource(fetcher, []Feed{{ID: "x", Kind: "unknown"}}, testLocations(), jst, 0, log)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = NewSource(fetcher, testFeeds(), testLocations(), nil, 0, log)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSource_Load(t *testing.T) {
	fetcher := &fakeFetcher{bodies: testBodies()}
	src, err := NewSource(fetcher, testFeeds(), testLocations(), jst, 0, logger.NewNop())
	require.NoError(t, err)

	now := time.Date(2026, 10, 5, 8, 0, 0, 0, jst)
	snap, err := src.Load(context.Background(), now)
	require.NoError(t, err)

	assert.True(t, snap.IsValidated())
	assert.Equal(t, now, snap.GeneratedAt())
	assert.ElementsMatch(t, []string{"work", "private", "ebisu", "hanzomon"}, fetcher.calls)

	trainer := snap.TrainerEvents()
	require.Len(t, trainer, 3)
	assert.Equal(t, "w1", trainer[0].ID)
	assert.Equal(t, domain.LocationID("ebisu"), trainer[0].Location)
	assert.Equal(t, "A", trainer[0].Room)
	assert.Equal(t, "p1", trainer[1].ID)
	assert.Equal(t, domain.SourceTrainerPrivate, trainer[1].SourceKind)
	assert.Equal(t, "w2", trainer[2].ID)
	assert.Equal(t, "半 佐藤様", trainer[2].Title)

	ebisu := snap.LocationEvents("ebisu")
	require.Len(t, ebisu, 2)
	rooms := []string{ebisu[0].Room, ebisu[1].Room}
	assert.ElementsMatch(t, []string{"A", "B"}, rooms)

	hanzomon := snap.LocationEvents("hanzomon")
	require.Len(t, hanzomon, 1)
	assert.Equal(t, "w2", hanzomon[0].ID)
	assert.Equal(t, domain.SourceLocation, hanzomon[0].SourceKind)
}

func TestSource_LoadFailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		errs    map[string]error
		bodies  func(map[string][]byte)
		wantErr error
	}{
		{
			name:    "feed unavailable",
			errs:    map[string]error{"private": ErrFeedNotFound},
			wantErr: ErrFeedNotFound,
		},
		{
			name:    "transport error",
			errs:    map[string]error{"ebisu": errors.New("dial tcp: timeout")},
			wantErr: nil,
		},
		{
			name:    "broken feed",
			bodies:  func(b map[string][]byte) { b["hanzomon"] = []byte("<html>login</html>") },
			wantErr: ErrParse,
		},
		{
			name:    "broken event",
			bodies:  func(b map[string][]byte) { b["work"] = calendar("UID:x\nSUMMARY:no start") },
			wantErr: ErrParse,
		},
		{
			name: "work session ends before it starts",
			bodies: func(b map[string][]byte) {
				b["work"] = calendar(`
UID:w1
SUMMARY:恵 田中様
DTSTART:20261006T100000
DTEND:20261006T110000`, `
UID:inv
SUMMARY:半 佐藤様
DTSTART:20261006T150000
DTEND:20261006T140000`)
			},
			wantErr: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := testBodies()
			if tt.bodies != nil {
				tt.bodies(bodies)
			}
			fetcher := &fakeFetcher{bodies: bodies, errs: tt.errs}
			src, err := NewSource(fetcher, testFeeds(), testLocations(), jst, 0, logger.NewNop())
			require.NoError(t, err)

			snap, err := src.Load(context.Background(), time.Date(2026, 10, 5, 8, 0, 0, 0, jst))

			require.Error(t, err)
			assert.Nil(t, snap)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
