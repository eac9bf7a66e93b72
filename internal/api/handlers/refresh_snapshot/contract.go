package refresh_snapshot

import (
	"context"

	"github.com/aceboy1016/ishihara-booking/internal/service/snapshot/models"
)

type SnapshotService interface {
	Refresh(ctx context.Context) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
