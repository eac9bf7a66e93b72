package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/engine"
)

// UseCase use case проверки одного слота
type UseCase struct {
	engine       AvailabilityEngine
	snapshots    SnapshotReader
	overrides    OverrideReader
	metrics      VerdictMetrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine AvailabilityEngine,
	snapshots SnapshotReader,
	overrides OverrideReader,
	metrics VerdictMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:       engine,
		snapshots:    snapshots,
		overrides:    overrides,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку слота
// Если снимок или ручные настройки недоступны, слот закрывается (outside-hours, degraded)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: location=%s, time=%s", req.Location, req.Time.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}
	if _, ok := uc.engine.Rules().Location(req.Location); !ok {
		uc.logger.Warn("CheckAvailability: location=%s not configured", req.Location)
		return nil, ErrUnknownLocation
	}

	resp := &Response{Location: req.Location, Time: req.Time}

	// 2. Ручные настройки читаются заново при каждом запросе
	overrides, err := uc.overrides.GetAll(ctx)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to read overrides, slot closed: %v", err)
		return uc.degraded(resp), nil
	}

	// 3. Текущий снимок календарей
	snap, err := uc.snapshots.Current()
	if err != nil {
		uc.logger.Warn("CheckAvailability: no snapshot, slot closed: %v", err)
		return uc.degraded(resp), nil
	}
	generated := snap.GeneratedAt()
	resp.SnapshotGeneratedAt = &generated

	// 4. Вердикт движка
	verdict, err := uc.engine.Check(uc.timeProvider.Now(), req.Time, req.Location, snap, overrides)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownLocation) {
			return nil, ErrUnknownLocation
		}
		uc.logger.Error("CheckAvailability: engine error: %v", err)
		return nil, fmt.Errorf("%w: Execute - engine error: %v", ErrInternal, err)
	}

	resp.Verdict = verdict
	uc.metrics.ObserveVerdict(string(req.Location), verdict.Outcome())

	uc.logger.Info("CheckAvailability: location=%s, time=%s, outcome=%s",
		req.Location, req.Time.Format(domain.TimeFormat), verdict.Outcome())
	return resp, nil
}

func (uc *UseCase) degraded(resp *Response) *Response {
	resp.Verdict = domain.Deny(domain.ReasonOutsideHours)
	resp.Degraded = true
	uc.metrics.ObserveVerdict(string(resp.Location), "degraded")
	return resp
}
