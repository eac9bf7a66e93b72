package refresher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aceboy1016/ishihara-booking/internal/service/snapshot/models"
)

// DefaultSchedule обновление каждые 5 минут
const DefaultSchedule = "*/5 * * * *"

// ErrInvalidSchedule возвращается при некорректном cron-выражении
var ErrInvalidSchedule = errors.New("refresher: invalid schedule")

// SnapshotService сервис, выполняющий обновление снимка
type SnapshotService interface {
	Refresh(ctx context.Context) (*models.StatusResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Refresher периодически обновляет снимок календарей по cron-расписанию
type Refresher struct {
	service SnapshotService
	cron    *cron.Cron
	timeout time.Duration
	log     Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New создает планировщик. Пустое расписание заменяется на DefaultSchedule
func New(service SnapshotService, schedule string, tz *time.Location, timeout time.Duration, log Logger) (*Refresher, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if tz == nil {
		tz = time.Local
	}

	r := &Refresher{
		service: service,
		cron:    cron.New(cron.WithLocation(tz)),
		timeout: timeout,
		log:     log,
	}
	r.ctx, r.cancel = context.WithCancel(context.Background())

	if _, err := r.cron.AddFunc(schedule, r.runOnce); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	return r, nil
}

// Start выполняет первое обновление синхронно и запускает расписание
// Ошибка первой загрузки не останавливает сервис: до успешного обновления все слоты закрыты
func (r *Refresher) Start() {
	r.runOnce()
	r.cron.Start()
	r.log.Info("Refresher: started")
}

// Stop останавливает расписание и ждет завершения текущего обновления
func (r *Refresher) Stop(ctx context.Context) {
	r.cancel()
	stopped := r.cron.Stop()

	select {
	case <-stopped.Done():
		r.log.Info("Refresher: stopped")
	case <-ctx.Done():
		r.log.Warn("Refresher: stop timed out: %v", ctx.Err())
	}
}

func (r *Refresher) runOnce() {
	ctx := r.ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if _, err := r.service.Refresh(ctx); err != nil {
		r.log.Error("Refresher: scheduled refresh failed: %v", err)
	}
}

// ValidateSchedule проверяет cron-выражение (5 полей)
func ValidateSchedule(schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}
	return nil
}
