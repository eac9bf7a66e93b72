package get_availability_grid

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/engine"
	"github.com/aceboy1016/ishihara-booking/pkg/types"
)

// UseCase use case построения сетки доступности зала
type UseCase struct {
	engine       AvailabilityEngine
	snapshots    SnapshotReader
	overrides    OverrideReader
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine AvailabilityEngine,
	snapshots SnapshotReader,
	overrides OverrideReader,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:       engine,
		snapshots:    snapshots,
		overrides:    overrides,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит сетку: каждый день диапазона, каждый получасовой старт с вердиктом.
// Снимок и ручные настройки читаются один раз на запрос.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailabilityGrid: location=%s, from=%s, to=%s",
		req.Location, formatDate(req.From), formatDate(req.To))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailabilityGrid: validation failed: %v", err)
		return nil, err
	}

	rules := uc.engine.Rules()
	if _, ok := rules.Location(req.Location); !ok {
		uc.logger.Warn("GetAvailabilityGrid: location=%s not configured", req.Location)
		return nil, ErrUnknownLocation
	}

	// 2. Диапазон в пределах окна записи
	now := uc.timeProvider.Now()
	from, to, err := resolveRange(req.From, req.To, now, rules.HorizonMonths, rules.Timezone)
	if err != nil {
		uc.logger.Warn("GetAvailabilityGrid: %v", err)
		return nil, err
	}

	// 3. Строки сетки
	starts, err := generateStartTimes(rules.Hours)
	if err != nil {
		uc.logger.Error("GetAvailabilityGrid: failed to generate start times: %v", err)
		return nil, fmt.Errorf("%w: failed to generate start times: %v", ErrInternal, err)
	}

	resp := &Response{Location: req.Location, From: from, To: to}
	days := dates(from, to)

	// 4. Без подтвержденных данных все слоты закрыты
	overrides, err := uc.overrides.GetAll(ctx)
	if err != nil {
		uc.logger.Error("GetAvailabilityGrid: failed to read overrides, grid closed: %v", err)
		return uc.degraded(resp, days, starts, rules), nil
	}
	snap, err := uc.snapshots.Current()
	if err != nil {
		uc.logger.Warn("GetAvailabilityGrid: no snapshot, grid closed: %v", err)
		return uc.degraded(resp, days, starts, rules), nil
	}
	generated := snap.GeneratedAt()
	resp.SnapshotGeneratedAt = &generated

	// 5. Дни считаются параллельно: движок не имеет состояния
	resp.Days = make([]domain.GridDay, len(days))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, date := range days {
		i, date := i, date
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			day, err := uc.buildDay(now, date, req.Location, starts, snap, overrides)
			if err != nil {
				return err
			}
			resp.Days[i] = day
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, engine.ErrUnknownLocation) {
			return nil, ErrUnknownLocation
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		uc.logger.Error("GetAvailabilityGrid: engine error: %v", err)
		return nil, fmt.Errorf("%w: Execute - engine error: %v", ErrInternal, err)
	}

	available := 0
	for i := range resp.Days {
		available += resp.Days[i].AvailableCount()
	}
	uc.logger.Info("GetAvailabilityGrid: location=%s, days=%d, slots=%d, available=%d",
		req.Location, len(days), len(days)*len(starts), available)

	return resp, nil
}

func (uc *UseCase) buildDay(
	now, date time.Time,
	location domain.LocationID,
	starts []types.TimeString,
	snap *domain.Snapshot,
	overrides domain.OverrideMaps,
) (domain.GridDay, error) {
	day := domain.GridDay{
		Date:    date,
		IsShort: uc.engine.Rules().IsShortDay(date),
		Slots:   make([]domain.GridSlot, 0, len(starts)),
	}

	for _, ts := range starts {
		start := ts.On(date)
		verdict, err := uc.engine.Check(now, start, location, snap, overrides)
		if err != nil {
			return domain.GridDay{}, err
		}
		day.Slots = append(day.Slots, domain.GridSlot{Start: start, StartTime: ts, Verdict: verdict})
	}

	return day, nil
}

func (uc *UseCase) degraded(resp *Response, days []time.Time, starts []types.TimeString, rules domain.BusinessRules) *Response {
	resp.Degraded = true
	resp.Days = make([]domain.GridDay, 0, len(days))
	for _, date := range days {
		resp.Days = append(resp.Days, closedDay(date, rules.IsShortDay(date), starts))
	}
	return resp
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "default"
	}
	return t.Format(domain.DateFormat)
}
