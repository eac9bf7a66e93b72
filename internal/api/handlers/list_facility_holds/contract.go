package list_facility_holds

import (
	"context"

	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
)

type OverrideService interface {
	ListFacilityHolds(ctx context.Context) (*models.FacilityHoldListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
