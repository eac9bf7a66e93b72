package import_overrides

import (
	"context"

	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
)

type OverrideService interface {
	Import(ctx context.Context, req *models.ImportRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
