package reset_overrides

import (
	"context"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
)

type OverrideService interface {
	Reset(ctx context.Context, kind domain.OverrideKind) (*models.ResetResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
