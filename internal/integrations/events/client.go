package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент стока событий жизненного цикла бронирований
// Доставка best-effort: вызывающая сторона логирует ошибку и продолжает работу
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента стока событий
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// BookingCreated публикует событие создания бронирования
func (c *Client) BookingCreated(ctx context.Context, booking *domain.Booking, participation *domain.Participation) error {
	return c.publish(ctx, newEvent(TypeBookingCreated, booking, "", participation))
}

// ParticipantJoined публикует событие присоединения к групповому бронированию
func (c *Client) ParticipantJoined(ctx context.Context, booking *domain.Booking, participation *domain.Participation) error {
	return c.publish(ctx, newEvent(TypeParticipantJoined, booking, "", participation))
}

// ParticipantRejected публикует событие отказа в участии из-за переполнения группы
func (c *Client) ParticipantRejected(ctx context.Context, booking *domain.Booking, participation *domain.Participation) error {
	return c.publish(ctx, newEvent(TypeParticipantRejected, booking, "", participation))
}

// BookingConfirmed публикует событие подтверждения бронирования
func (c *Client) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return c.publish(ctx, newEvent(TypeBookingConfirmed, booking, "", nil))
}

// BookingCancelled публикует событие отмены бронирования
func (c *Client) BookingCancelled(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	return c.publish(ctx, newEvent(TypeBookingCancelled, booking, actor, nil))
}

// BookingRescheduled публикует событие переноса бронирования
func (c *Client) BookingRescheduled(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	return c.publish(ctx, newEvent(TypeBookingRescheduled, booking, actor, nil))
}

func newEvent(eventType string, booking *domain.Booking, actor domain.Actor, participation *domain.Participation) *Event {
	event := &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		TenantID:   booking.TenantID,
		BookingID:  booking.ID,
		ResourceID: booking.ResourceID,
		Start:      booking.Start,
		End:        booking.End,
		Status:     string(booking.Status),
		Actor:      string(actor),
	}

	if participation != nil {
		event.ParticipantID = participation.ParticipantID
		event.ParticipantKind = participation.ParticipantKind
	}

	return event
}

func (c *Client) publish(ctx context.Context, event *Event) error {
	url := fmt.Sprintf("%s/events", c.baseURL)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	c.log.Info("published event type=%s booking=%d", event.Type, event.BookingID)
	return nil
}
