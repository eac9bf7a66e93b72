package compose_booking_request

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/engine"
)

// UseCase use case составления заявки на запись
type UseCase struct {
	engine       AvailabilityEngine
	snapshots    SnapshotReader
	overrides    OverrideReader
	metrics      VerdictMetrics
	trainerName  string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine AvailabilityEngine,
	snapshots SnapshotReader,
	overrides OverrideReader,
	metrics VerdictMetrics,
	trainerName string,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:       engine,
		snapshots:    snapshots,
		overrides:    overrides,
		metrics:      metrics,
		trainerName:  trainerName,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute перепроверяет каждый выбранный слот и собирает текст заявки из доступных.
// Недоступные слоты возвращаются с причиной отказа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComposeBookingRequest: slots=%d", len(req.Slots))

	// 1. Валидация входных данных
	rules := uc.engine.Rules()
	if err := validateRequest(req, rules); err != nil {
		uc.logger.Warn("ComposeBookingRequest: validation failed: %v", err)
		return nil, err
	}
	slots := dedupe(req.Slots)

	resp := &Response{
		Request:  domain.BookingRequest{Slots: []domain.SelectedSlot{}},
		Rejected: []domain.RejectedSlot{},
	}

	// 2. Без подтвержденных данных ни один слот не предлагается
	overrides, err := uc.overrides.GetAll(ctx)
	if err != nil {
		uc.logger.Error("ComposeBookingRequest: failed to read overrides, all slots rejected: %v", err)
		return uc.degraded(resp, slots), nil
	}
	snap, err := uc.snapshots.Current()
	if err != nil {
		uc.logger.Warn("ComposeBookingRequest: no snapshot, all slots rejected: %v", err)
		return uc.degraded(resp, slots), nil
	}
	generated := snap.GeneratedAt()
	resp.SnapshotGeneratedAt = &generated

	// 3. Перепроверка каждого слота
	now := uc.timeProvider.Now()
	for _, slot := range slots {
		verdict, err := uc.engine.Check(now, slot.Start, slot.Location, snap, overrides)
		if err != nil {
			if errors.Is(err, engine.ErrUnknownLocation) {
				return nil, ErrUnknownLocation
			}
			uc.logger.Error("ComposeBookingRequest: engine error: %v", err)
			return nil, fmt.Errorf("%w: Execute - engine error: %v", ErrInternal, err)
		}
		uc.metrics.ObserveVerdict(string(slot.Location), verdict.Outcome())

		if !verdict.Admitted {
			resp.Rejected = append(resp.Rejected, domain.RejectedSlot{SelectedSlot: slot, Reason: verdict.Reason})
			continue
		}
		resp.Request.Slots = append(resp.Request.Slots, slot)
	}

	// 4. Текст заявки по возрастанию времени
	sort.SliceStable(resp.Request.Slots, func(i, j int) bool {
		return resp.Request.Slots[i].Start.Before(resp.Request.Slots[j].Start)
	})
	resp.Request.Message = renderMessage(resp.Request.Slots, rules, uc.trainerName)

	uc.logger.Info("ComposeBookingRequest: accepted=%d, rejected=%d", len(resp.Request.Slots), len(resp.Rejected))
	return resp, nil
}

func (uc *UseCase) degraded(resp *Response, slots []domain.SelectedSlot) *Response {
	resp.Degraded = true
	for _, slot := range slots {
		resp.Rejected = append(resp.Rejected, domain.RejectedSlot{SelectedSlot: slot, Reason: domain.ReasonOutsideHours})
		uc.metrics.ObserveVerdict(string(slot.Location), "degraded")
	}
	return resp
}
