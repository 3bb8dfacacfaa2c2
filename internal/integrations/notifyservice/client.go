package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений (email / SMS / Telegram живут за ним)
// Доставка строго fire-and-forget: ошибки логируются и никогда не прерывают
// вызвавший переход статуса
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// notifyRequest тело запроса к сервису уведомлений
type notifyRequest struct {
	Event       string  `json:"event"`
	BookingID   int64   `json:"bookingId"`
	UserID      int64   `json:"userId"`
	UserName    string  `json:"userName"`
	ServiceName string  `json:"serviceName"`
	PostID      int64   `json:"postId"`
	DateTime    string  `json:"dateTime"`
	Notes       *string `json:"notes,omitempty"`
}

// Notify отправляет событие жизненного цикла бронирования
// Никогда не возвращает ошибку вызывающему - подтверждение бронирования
// должно сохраниться, даже если Telegram недоступен
func (c *Client) Notify(ctx context.Context, event domain.NotificationEvent, b *domain.Booking) {
	if err := c.send(ctx, event, b); err != nil {
		c.log.Error("Notify: failed to deliver %s for booking id=%d: %v", event, b.ID, err)
		return
	}

	c.log.Info("Notify: delivered %s for booking id=%d", event, b.ID)
}

func (c *Client) send(ctx context.Context, event domain.NotificationEvent, b *domain.Booking) error {
	payload := notifyRequest{
		Event:       string(event),
		BookingID:   b.ID,
		UserID:      b.UserID,
		UserName:    b.UserName,
		ServiceName: b.ServiceName,
		PostID:      b.PostID,
		DateTime:    b.DateTime.Format(time.RFC3339),
		Notes:       b.Notes,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
