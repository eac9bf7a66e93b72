package get_availability_grid

import "errors"

var (
	// ErrUnknownLocation возвращается, когда зал не настроен
	ErrUnknownLocation = errors.New("location not found")

	// ErrInvalidRange возвращается, когда диапазон дат пуст или целиком вне окна записи
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
