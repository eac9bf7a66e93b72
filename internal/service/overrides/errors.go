package overrides

import "errors"

var (
	// ErrSnapshotNotLoaded возвращается, когда календари еще ни разу не загружены
	ErrSnapshotNotLoaded = errors.New("calendar snapshot not loaded")

	// ErrInvalidKind возвращается при неизвестном виде настройки
	ErrInvalidKind = errors.New("invalid override kind")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
