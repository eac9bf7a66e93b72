package snapshot

import "errors"

var (
	// ErrRefreshFailed возвращается, когда календари не удалось загрузить
	// Предыдущий снимок при этом остается в силе
	ErrRefreshFailed = errors.New("service: snapshot refresh failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
