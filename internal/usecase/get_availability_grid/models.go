package get_availability_grid

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// Request модель запроса сетки доступности
// Нулевые From/To означают окно записи по умолчанию: сегодня .. сегодня + горизонт
type Request struct {
	Location domain.LocationID
	From     time.Time // Дата (без времени)
	To       time.Time // Дата (без времени), включительно
}

// Response модель ответа с сеткой доступности
type Response struct {
	Location            domain.LocationID
	From                time.Time
	To                  time.Time
	Days                []domain.GridDay
	Degraded            bool
	SnapshotGeneratedAt *time.Time
}
