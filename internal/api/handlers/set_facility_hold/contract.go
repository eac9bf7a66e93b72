package set_facility_hold

import (
	"context"

	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
)

type OverrideService interface {
	SetFacilityHold(ctx context.Context, req *models.SetFacilityHoldRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
