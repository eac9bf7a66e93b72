package list_private_events

import (
	"context"

	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
)

type OverrideService interface {
	ListPrivateEvents(ctx context.Context) (*models.PrivateEventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
