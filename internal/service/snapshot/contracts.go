package snapshot

import (
	"context"
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	snapshotStore "github.com/aceboy1016/ishihara-booking/internal/infra/storage/snapshot"
)

// SnapshotLoader источник снимка календарей
type SnapshotLoader interface {
	Load(ctx context.Context, now time.Time) (*domain.Snapshot, error)
}

// SnapshotStore хранилище текущего снимка
type SnapshotStore interface {
	Replace(snap *domain.Snapshot, at time.Time) error
	RecordFailure(err error, at time.Time)
	Status() snapshotStore.Status
}

// Metrics метрики обновления снимка
type Metrics interface {
	ObserveSnapshotRefresh(result string)
	SetSnapshot(generatedAt time.Time, eventsByCollection map[string]int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
