package overrides

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/engine"
	snapshotStore "github.com/aceboy1016/ishihara-booking/internal/infra/storage/snapshot"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
	"github.com/aceboy1016/ishihara-booking/pkg/logger"
)

var jst = time.FixedZone("JST", 9*3600)

type fakeRepo struct {
	maps       domain.OverrideMaps
	getErr     error
	setErr     error
	set        []domain.Override
	deleted    []domain.OverrideKind
	replaced   map[domain.OverrideKind]map[string]bool
	replaceErr error
}

func (f *fakeRepo) GetAll(context.Context) (domain.OverrideMaps, error) {
	return f.maps, f.getErr
}

func (f *fakeRepo) Set(_ context.Context, o domain.Override) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.set = append(f.set, o)
	return nil
}

func (f *fakeRepo) DeleteAll(_ context.Context, kind domain.OverrideKind) (int64, error) {
	f.deleted = append(f.deleted, kind)
	return 2, nil
}

func (f *fakeRepo) ReplaceAll(_ context.Context, kind domain.OverrideKind, values map[string]bool) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	if f.replaced == nil {
		f.replaced = map[domain.OverrideKind]map[string]bool{}
	}
	f.replaced[kind] = values
	return nil
}

func at(day, hour int) time.Time {
	return time.Date(2026, 10, day, hour, 0, 0, 0, jst)
}

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	rules := domain.DefaultBusinessRules(jst)
	rules.Locations = []domain.LocationSpec{
		{ID: "ebisu", Rooms: []domain.RoomSpec{{Name: "A", Marker: "A"}, {Name: "B", Marker: "B"}}},
		{ID: "hanzomon", MaxConcurrent: 3},
	}
	eng, err := engine.New(rules)
	require.NoError(t, err)
	return eng
}

func testHolder(t *testing.T) *snapshotStore.Holder {
	t.Helper()
	trainer := []domain.Event{
		{ID: "w1", Start: at(6, 10), End: at(6, 11), Title: "恵 田中様", Location: "ebisu", SourceKind: domain.SourceTrainerWork},
		{ID: "p1", Start: at(6, 12), End: at(6, 13), Title: "歯医者", SourceKind: domain.SourceTrainerPrivate},
		{ID: "p2", Start: at(7, 0), End: at(7, 0).Add(24*time.Hour - time.Second), Title: "旅行", SourceKind: domain.SourceTrainerPrivate},
	}
	locations := map[domain.LocationID][]domain.Event{
		"ebisu": {
			{ID: "h1", Start: at(6, 10), End: at(6, 11), Title: "TOPFORM 石原 枠抑え", Location: "ebisu", SourceKind: domain.SourceLocation},
			{ID: "e1", Start: at(6, 15), End: at(6, 16), Title: "Aルーム 会員", Location: "ebisu", SourceKind: domain.SourceLocation},
		},
		"hanzomon": {
			{ID: "h2", Start: at(6, 9), End: at(6, 10), Title: "石原 topform", Location: "hanzomon", SourceKind: domain.SourceLocation},
		},
	}
	snap, err := domain.NewSnapshot(at(5, 8), trainer, locations)
	require.NoError(t, err)

	h := snapshotStore.NewHolder()
	require.NoError(t, h.Replace(snap, at(5, 8)))
	return h
}

func newService(t *testing.T, repo *fakeRepo, snaps SnapshotReader) *Service {
	return NewService(repo, snaps, testEngine(t), logger.NewNop())
}

func TestService_ListPrivateEvents(t *testing.T) {
	repo := &fakeRepo{maps: domain.OverrideMaps{Private: map[string]bool{"p1": false}}}
	svc := newService(t, repo, testHolder(t))

	resp, err := svc.ListPrivateEvents(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Events, 2)
	assert.Equal(t, "p1", resp.Events[0].ID)
	assert.False(t, resp.Events[0].Blocked)
	assert.False(t, resp.Events[0].AllDay)
	assert.Equal(t, "p2", resp.Events[1].ID)
	assert.True(t, resp.Events[1].Blocked)
	assert.True(t, resp.Events[1].AllDay)
}

func TestService_ListFacilityHolds(t *testing.T) {
	repo := &fakeRepo{maps: domain.OverrideMaps{FacilityHolds: map[string]bool{"h2": true}}}
	svc := newService(t, repo, testHolder(t))

	resp, err := svc.ListFacilityHolds(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Holds, 2)

	assert.Equal(t, "h2", resp.Holds[0].ID)
	assert.Equal(t, domain.LocationID("hanzomon"), resp.Holds[0].Location)
	assert.True(t, resp.Holds[0].Ignored)
	assert.False(t, resp.Holds[0].HasRealBooking)

	assert.Equal(t, "h1", resp.Holds[1].ID)
	assert.False(t, resp.Holds[1].Ignored)
	assert.True(t, resp.Holds[1].HasRealBooking)
}

func TestService_ListRequiresSnapshot(t *testing.T) {
	svc := newService(t, &fakeRepo{}, snapshotStore.NewHolder())

	_, err := svc.ListPrivateEvents(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotLoaded)

	_, err = svc.ListFacilityHolds(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotLoaded)
}

func TestService_ListRepositoryError(t *testing.T) {
	svc := newService(t, &fakeRepo{getErr: errors.New("db down")}, testHolder(t))

	_, err := svc.ListFacilityHolds(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Set(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(t, repo, testHolder(t))

	require.NoError(t, svc.SetPrivateEvent(context.Background(), &models.SetPrivateEventRequest{EventID: "p1", Blocked: false}))
	require.NoError(t, svc.SetFacilityHold(context.Background(), &models.SetFacilityHoldRequest{EventID: "h1", Ignored: true}))

	assert.Equal(t, []domain.Override{
		{Kind: domain.OverridePrivateEvent, EventID: "p1", Value: false},
		{Kind: domain.OverrideFacilityHold, EventID: "h1", Value: true},
	}, repo.set)

	err := svc.SetPrivateEvent(context.Background(), &models.SetPrivateEventRequest{EventID: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.SetFacilityHold(context.Background(), &models.SetFacilityHoldRequest{EventID: strings.Repeat("x", maxEventIDLength+1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.setErr = errors.New("db down")
	err = svc.SetFacilityHold(context.Background(), &models.SetFacilityHoldRequest{EventID: "h1"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_ResetAndImport(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(t, repo, testHolder(t))

	resp, err := svc.Reset(context.Background(), domain.OverrideFacilityHold)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
	assert.Equal(t, []domain.OverrideKind{domain.OverrideFacilityHold}, repo.deleted)

	_, err = svc.Reset(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidKind)

	values := map[string]bool{"p1": false, "p2": true}
	require.NoError(t, svc.Import(context.Background(), &models.ImportRequest{Kind: domain.OverridePrivateEvent, Values: values}))
	assert.Equal(t, values, repo.replaced[domain.OverridePrivateEvent])

	err = svc.Import(context.Background(), &models.ImportRequest{Kind: domain.OverridePrivateEvent, Values: map[string]bool{"": true}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Import(context.Background(), &models.ImportRequest{Kind: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidKind)

	repo.replaceErr = errors.New("tx aborted")
	err = svc.Import(context.Background(), &models.ImportRequest{Kind: domain.OverrideFacilityHold, Values: values})
	assert.ErrorIs(t, err, ErrInternal)
}
