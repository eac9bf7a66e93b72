package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	snapshotStore "github.com/aceboy1016/ishihara-booking/internal/infra/storage/snapshot"
	"github.com/aceboy1016/ishihara-booking/pkg/logger"
)

type fakeLoader struct {
	calls   atomic.Int32
	loadFn  func(ctx context.Context, now time.Time) (*domain.Snapshot, error)
	release chan struct{}
}

func (f *fakeLoader) Load(ctx context.Context, now time.Time) (*domain.Snapshot, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.loadFn(ctx, now)
}

type fakeMetrics struct {
	mu        sync.Mutex
	results   []string
	generated time.Time
	counts    map[string]int
}

func (m *fakeMetrics) ObserveSnapshotRefresh(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func (m *fakeMetrics) SetSnapshot(generatedAt time.Time, counts map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generated = generatedAt
	m.counts = counts
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var testNow = time.Date(2026, 10, 5, 8, 0, 0, 0, time.FixedZone("JST", 9*3600))

func snapshotWith(t *testing.T, at time.Time) *domain.Snapshot {
	t.Helper()
	ev := domain.Event{
		ID:         "w1",
		Start:      at.Add(time.Hour),
		End:        at.Add(2 * time.Hour),
		SourceKind: domain.SourceTrainerWork,
	}
	snap, err := domain.NewSnapshot(at, []domain.Event{ev}, map[domain.LocationID][]domain.Event{"ebisu": nil})
	require.NoError(t, err)
	return snap
}

func newTestService(loader SnapshotLoader) (*Service, *snapshotStore.Holder, *fakeMetrics) {
	holder := snapshotStore.NewHolder()
	m := &fakeMetrics{}
	svc := NewService(loader, holder, m, logger.NewNop())
	svc.timeProvider = fixedTime{now: testNow}
	return svc, holder, m
}

func TestService_Refresh(t *testing.T) {
	loader := &fakeLoader{loadFn: func(_ context.Context, now time.Time) (*domain.Snapshot, error) {
		return snapshotWith(t, now), nil
	}}
	svc, holder, m := newTestService(loader)

	status, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.True(t, status.Loaded)
	require.NotNil(t, status.GeneratedAt)
	assert.True(t, status.GeneratedAt.Equal(testNow))
	assert.Equal(t, int64(0), *status.AgeSeconds)
	assert.Equal(t, map[string]int{"trainer": 1, "ebisu": 0}, status.Counts)
	assert.Empty(t, status.LastError)

	_, err = holder.Current()
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, m.results)
	assert.Equal(t, map[string]int{"trainer": 1, "ebisu": 0}, m.counts)
}

func TestService_RefreshFailureKeepsPrevious(t *testing.T) {
	fail := false
	loader := &fakeLoader{loadFn: func(_ context.Context, now time.Time) (*domain.Snapshot, error) {
		if fail {
			return nil, errors.New("feed unavailable")
		}
		return snapshotWith(t, now), nil
	}}
	svc, holder, m := newTestService(loader)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	first, err := holder.Current()
	require.NoError(t, err)

	fail = true
	_, err = svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRefreshFailed)

	current, err := holder.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)

	status := svc.Status()
	assert.True(t, status.Loaded)
	assert.Contains(t, status.LastError, "feed unavailable")
	assert.Equal(t, []string{"ok", "error"}, m.results)
}

func TestService_StatusBeforeFirstLoad(t *testing.T) {
	svc, _, _ := newTestService(&fakeLoader{})

	status := svc.Status()

	assert.False(t, status.Loaded)
	assert.Nil(t, status.GeneratedAt)
	assert.Nil(t, status.LastAttempt)
	assert.Empty(t, status.Counts)
}

func TestService_ConcurrentRefreshLoadsOnce(t *testing.T) {
	loader := &fakeLoader{
		release: make(chan struct{}),
		loadFn: func(_ context.Context, now time.Time) (*domain.Snapshot, error) {
			return snapshotWith(t, now), nil
		},
	}
	svc, _, _ := newTestService(loader)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Refresh(context.Background())
			assert.NoError(t, err)
		}()
	}

	// второй вызов должен успеть присоединиться к первому
	require.Eventually(t, func() bool { return loader.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(loader.release)
	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())
}
