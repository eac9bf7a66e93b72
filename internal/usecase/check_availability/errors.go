package check_availability

import "errors"

var (
	// ErrUnknownLocation возвращается, когда зал не настроен
	ErrUnknownLocation = errors.New("location not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
