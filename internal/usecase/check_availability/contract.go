package check_availability

import (
	"context"
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// AvailabilityEngine движок проверки слота
type AvailabilityEngine interface {
	Check(now, t time.Time, location domain.LocationID, snap *domain.Snapshot, overrides domain.OverrideMaps) (domain.Verdict, error)
	Rules() domain.BusinessRules
}

// SnapshotReader хранилище текущего снимка календарей
type SnapshotReader interface {
	Current() (*domain.Snapshot, error)
}

// OverrideReader хранилище ручных настроек администратора
// Читается заново при каждом запросе
type OverrideReader interface {
	GetAll(ctx context.Context) (domain.OverrideMaps, error)
}

// VerdictMetrics метрики вердиктов
type VerdictMetrics interface {
	ObserveVerdict(location, outcome string)
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
