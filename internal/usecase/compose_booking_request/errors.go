package compose_booking_request

import "errors"

var (
	// ErrUnknownLocation возвращается, когда зал не настроен
	ErrUnknownLocation = errors.New("location not found")

	// ErrNoSlots возвращается, когда не выбран ни один слот
	ErrNoSlots = errors.New("no slots selected")

	// ErrTooManySlots возвращается, когда выбрано больше слотов, чем допускается в одной заявке
	ErrTooManySlots = errors.New("too many slots selected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
