package calendarsource

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ICSFetcher загружает сырое тело ICS-ленты
type ICSFetcher interface {
	FetchICS(ctx context.Context, feed Feed) ([]byte, error)
}
