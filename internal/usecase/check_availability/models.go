package check_availability

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// Request модель запроса на проверку слота
type Request struct {
	Location domain.LocationID // Зал
	Time     time.Time         // Начало сессии
}

// Response модель ответа с вердиктом
type Response struct {
	Location            domain.LocationID
	Time                time.Time
	Verdict             domain.Verdict
	Degraded            bool       // Данные не подтверждены, слот закрыт по умолчанию
	SnapshotGeneratedAt *time.Time // nil, если снимок еще не загружен
}
