package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client доставляет команды в сервис управления воспроизведением
type Client struct {
	http *resty.Client
	log  Logger
}

// NewClient создает клиента; retries - число повторов при сетевых ошибках и 5xx
func NewClient(baseURL string, timeout time.Duration, retries int, log Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(retries).
			SetRetryWaitTime(100*time.Millisecond).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= 500
			}).
			SetHeader("Content-Type", "application/json"),
		log: log,
	}
}

// Send отправляет команду устройству
func (c *Client) Send(ctx context.Context, cmd Command) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(cmd).
		Post(fmt.Sprintf("/internal/devices/%d/commands", cmd.DeviceID))
	if err != nil {
		return fmt.Errorf("%w: Send - booking_id=%d: %v", ErrInternal, cmd.BookingID, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: Send - booking_id=%d: status %d: %s", ErrRejected, cmd.BookingID, resp.StatusCode(), resp.String())
	}

	c.log.Info("Playback command %s delivered: device_id=%d, booking_id=%d", cmd.Type, cmd.DeviceID, cmd.BookingID)
	return nil
}

// LogSink пишет команды в лог, используется когда адрес сервиса не задан
type LogSink struct {
	log Logger
}

// NewLogSink создает приемник команд, который только логирует
func NewLogSink(log Logger) *LogSink {
	return &LogSink{log: log}
}

// Send логирует команду
func (s *LogSink) Send(_ context.Context, cmd Command) error {
	s.log.Info("Playback command %s (not delivered, no playback service configured): device_id=%d, slot=%s/%d, booking_id=%d, sub_slots=%v, reason=%q",
		cmd.Type, cmd.DeviceID, cmd.Date, cmd.Hour, cmd.BookingID, cmd.SubSlots, cmd.Reason)
	return nil
}
