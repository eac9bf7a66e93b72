package get_availability_grid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/engine"
	snapshotStore "github.com/aceboy1016/ishihara-booking/internal/infra/storage/snapshot"
	"github.com/aceboy1016/ishihara-booking/pkg/logger"
	"github.com/aceboy1016/ishihara-booking/pkg/types"
)

var jst = time.FixedZone("JST", 9*3600)

// понедельник
var testNow = time.Date(2026, 10, 5, 8, 0, 0, 0, jst)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeOverrides struct {
	maps  domain.OverrideMaps
	err   error
	calls int
}

func (f *fakeOverrides) GetAll(context.Context) (domain.OverrideMaps, error) {
	f.calls++
	return f.maps, f.err
}

func newUseCase(t *testing.T, snaps SnapshotReader, ov OverrideReader) *UseCase {
	t.Helper()
	rules := domain.DefaultBusinessRules(jst)
	rules.Locations = []domain.LocationSpec{{ID: "hanzomon", DisplayName: "半蔵門", MaxConcurrent: 3}}
	eng, err := engine.New(rules)
	require.NoError(t, err)

	uc := NewUseCase(eng, snaps, ov, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func holderWith(t *testing.T, trainer ...domain.Event) *snapshotStore.Holder {
	t.Helper()
	snap, err := domain.NewSnapshot(testNow, trainer, map[domain.LocationID][]domain.Event{"hanzomon": nil})
	require.NoError(t, err)
	h := snapshotStore.NewHolder()
	require.NoError(t, h.Replace(snap, testNow))
	return h
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, jst)
}

func TestGenerateStartTimes(t *testing.T) {
	starts, err := generateStartTimes(domain.BusinessHours{Open: "09:00", WeekdayClose: "22:00", HolidayClose: "20:00"})
	require.NoError(t, err)

	require.Len(t, starts, 25)
	assert.Equal(t, types.TimeString("09:00"), starts[0])
	assert.Equal(t, types.TimeString("09:30"), starts[1])
	assert.Equal(t, types.TimeString("21:00"), starts[len(starts)-1])
}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		wantFrom time.Time
		wantTo   time.Time
		wantErr  bool
	}{
		{name: "default window", wantFrom: date(2026, 10, 5), wantTo: date(2026, 12, 5)},
		{name: "inside window", from: date(2026, 10, 6), to: date(2026, 10, 8), wantFrom: date(2026, 10, 6), wantTo: date(2026, 10, 8)},
		{name: "clamped", from: date(2026, 9, 1), to: date(2027, 1, 31), wantFrom: date(2026, 10, 5), wantTo: date(2026, 12, 5)},
		{name: "utc date keeps calendar day", from: time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC), to: date(2026, 10, 6), wantFrom: date(2026, 10, 6), wantTo: date(2026, 10, 6)},
		{name: "reversed", from: date(2026, 10, 8), to: date(2026, 10, 6), wantErr: true},
		{name: "entirely past", from: date(2026, 9, 1), to: date(2026, 9, 2), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := resolveRange(tt.from, tt.to, testNow, 2, jst)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantFrom.Equal(from), "from=%s", from)
			assert.True(t, tt.wantTo.Equal(to), "to=%s", to)
		})
	}
}

func TestUseCase_Execute(t *testing.T) {
	busy := domain.Event{
		ID:         "w1",
		Start:      time.Date(2026, 10, 6, 14, 0, 0, 0, jst),
		End:        time.Date(2026, 10, 6, 15, 0, 0, 0, jst),
		Location:   "hanzomon",
		SourceKind: domain.SourceTrainerWork,
	}
	ov := &fakeOverrides{}
	uc := newUseCase(t, holderWith(t, busy), ov)

	// вторник и суббота
	resp, err := uc.Execute(context.Background(), &Request{Location: "hanzomon", From: date(2026, 10, 6), To: date(2026, 10, 10)})
	require.NoError(t, err)

	assert.False(t, resp.Degraded)
	assert.Equal(t, 1, ov.calls)
	require.Len(t, resp.Days, 5)

	tuesday := resp.Days[0]
	assert.False(t, tuesday.IsShort)
	require.Len(t, tuesday.Slots, 25)
	byTime := make(map[types.TimeString]domain.Verdict, len(tuesday.Slots))
	for _, s := range tuesday.Slots {
		byTime[s.StartTime] = s.Verdict
	}
	assert.Equal(t, domain.Deny(domain.ReasonTrainerBusy), byTime["13:30"])
	assert.Equal(t, domain.Deny(domain.ReasonTrainerBusy), byTime["14:00"])
	assert.Equal(t, domain.Admit(), byTime["15:00"])
	assert.Equal(t, domain.Admit(), byTime["21:00"])

	saturday := resp.Days[4]
	assert.True(t, saturday.IsShort)
	last := saturday.Slots[len(saturday.Slots)-1]
	assert.Equal(t, types.TimeString("21:00"), last.StartTime)
	assert.Equal(t, domain.Deny(domain.ReasonOutsideHours), last.Verdict)
	assert.Equal(t, domain.Admit(), saturday.Slots[20].Verdict) // 19:00
}

func TestUseCase_Errors(t *testing.T) {
	uc := newUseCase(t, holderWith(t), &fakeOverrides{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Location: "ebisu"})
	assert.ErrorIs(t, err, ErrUnknownLocation)

	_, err = uc.Execute(context.Background(), &Request{Location: "hanzomon", From: date(2027, 3, 1)})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestUseCase_FailsClosed(t *testing.T) {
	tests := []struct {
		name  string
		snaps SnapshotReader
		ov    OverrideReader
	}{
		{name: "overrides unavailable", snaps: holderWith(t), ov: &fakeOverrides{err: errors.New("db down")}},
		{name: "no snapshot", snaps: snapshotStore.NewHolder(), ov: &fakeOverrides{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(t, tt.snaps, tt.ov)

			resp, err := uc.Execute(context.Background(), &Request{Location: "hanzomon", From: date(2026, 10, 6), To: date(2026, 10, 7)})
			require.NoError(t, err)

			assert.True(t, resp.Degraded)
			require.Len(t, resp.Days, 2)
			for _, day := range resp.Days {
				assert.True(t, day.IsFullyBooked())
				for _, s := range day.Slots {
					assert.Equal(t, domain.ReasonOutsideHours, s.Verdict.Reason)
				}
			}
		})
	}
}
