package overrides

import (
	"context"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/engine"
)

// OverrideRepository интерфейс репозитория ручных настроек
type OverrideRepository interface {
	GetAll(ctx context.Context) (domain.OverrideMaps, error)
	Set(ctx context.Context, override domain.Override) error
	DeleteAll(ctx context.Context, kind domain.OverrideKind) (int64, error)
	ReplaceAll(ctx context.Context, kind domain.OverrideKind, values map[string]bool) error
}

// SnapshotReader хранилище текущего снимка календарей
type SnapshotReader interface {
	Current() (*domain.Snapshot, error)
}

// TitleMatcherProvider источник предикатов названий, общих с движком
type TitleMatcherProvider interface {
	Matcher() *engine.TitleMatcher
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
