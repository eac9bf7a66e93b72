package calendarsource

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarsource: internal error")

	// ErrFeedNotFound возвращается, когда ICS-лента не найдена (404)
	ErrFeedNotFound = errors.New("calendarsource: feed not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервера календаря
	ErrInvalidResponse = errors.New("calendarsource: invalid response")

	// ErrParse возвращается, когда ICS не удалось разобрать
	ErrParse = errors.New("calendarsource: failed to parse ics")

	// ErrNoFeeds возвращается, если не настроена ни одна лента
	ErrNoFeeds = errors.New("calendarsource: no feeds configured")
)
