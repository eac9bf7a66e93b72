package calendarsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxFeedBytes ограничение размера одной ICS-ленты
const maxFeedBytes = 16 << 20

// Client HTTP-клиент для загрузки ICS-лент
type Client struct {
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(timeout time.Duration, log Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FetchICS загружает тело ICS-ленты
func (c *Client) FetchICS(ctx context.Context, feed Feed) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "text/calendar")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: feed=%s: failed to execute request: %v", ErrInternal, feed.ID, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: feed=%s", ErrFeedNotFound, feed.ID)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: feed=%s: unexpected status code %d: %s", ErrInvalidResponse, feed.ID, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: feed=%s: failed to read body: %v", ErrInvalidResponse, feed.ID, err)
	}
	if len(body) > maxFeedBytes {
		return nil, fmt.Errorf("%w: feed=%s: body exceeds %d bytes", ErrInvalidResponse, feed.ID, maxFeedBytes)
	}

	c.log.Info("FetchICS: feed=%s url=%s bytes=%d", feed.ID, redactURL(feed.URL), len(body))
	return body, nil
}

// redactURL скрывает путь и параметры (в них секретный токен ленты)
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "ics://...(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/...(redacted)"
}
