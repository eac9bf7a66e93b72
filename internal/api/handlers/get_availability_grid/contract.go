package get_availability_grid

import (
	"context"

	getAvailabilityGrid "github.com/aceboy1016/ishihara-booking/internal/usecase/get_availability_grid"
)

type GetAvailabilityGridUseCase interface {
	Execute(ctx context.Context, req *getAvailabilityGrid.Request) (*getAvailabilityGrid.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
