package snapshot

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/aceboy1016/ishihara-booking/internal/service/snapshot/models"
)

const (
	refreshKey = "refresh"

	resultOK    = "ok"
	resultError = "error"
)

// Service сервис обновления и просмотра снимка календарей
type Service struct {
	loader       SnapshotLoader
	store        SnapshotStore
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger

	group singleflight.Group
}

// NewService создает новый экземпляр сервиса снимка
func NewService(
	loader SnapshotLoader,
	store SnapshotStore,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		loader:       loader,
		store:        store,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Refresh загружает календари и атомарно заменяет снимок
// Одновременные вызовы (по расписанию и вручную) выполняют одну загрузку
func (s *Service) Refresh(ctx context.Context) (*models.StatusResponse, error) {
	_, err, shared := s.group.Do(refreshKey, func() (interface{}, error) {
		return nil, s.refresh(ctx)
	})
	if shared {
		s.logger.Info("Refresh: joined in-flight refresh")
	}
	if err != nil {
		return nil, err
	}

	return s.Status(), nil
}

func (s *Service) refresh(ctx context.Context) error {
	started := s.timeProvider.Now()
	s.logger.Info("Refresh: loading calendars")

	snap, err := s.loader.Load(ctx, started)
	if err != nil {
		s.store.RecordFailure(err, started)
		s.metrics.ObserveSnapshotRefresh(resultError)
		s.logger.Error("Refresh: failed to load calendars, keeping previous snapshot: %v", err)
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	if err := s.store.Replace(snap, started); err != nil {
		s.store.RecordFailure(err, started)
		s.metrics.ObserveSnapshotRefresh(resultError)
		s.logger.Error("Refresh: failed to store snapshot: %v", err)
		return fmt.Errorf("%w: Refresh - store error: %v", ErrInternal, err)
	}

	counts := snap.Counts()
	s.metrics.ObserveSnapshotRefresh(resultOK)
	s.metrics.SetSnapshot(snap.GeneratedAt(), counts)

	s.logger.Info("Refresh: snapshot replaced, counts=%v, took=%s", counts, s.timeProvider.Now().Sub(started))
	return nil
}

// Status возвращает состояние текущего снимка
func (s *Service) Status() *models.StatusResponse {
	return models.FromStatus(s.store.Status(), s.timeProvider.Now())
}
