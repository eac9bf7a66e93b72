package compose_booking_request

import (
	"context"

	composeBookingRequest "github.com/aceboy1016/ishihara-booking/internal/usecase/compose_booking_request"
)

type ComposeBookingRequestUseCase interface {
	Execute(ctx context.Context, req *composeBookingRequest.Request) (*composeBookingRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
