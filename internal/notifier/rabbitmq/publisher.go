package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"labBooker/internal/config"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/models"
	"labBooker/internal/notifier"
)

// Event is the JSON body published for every notification change.
type Event struct {
	NotificationID    string    `json:"notification_id"`
	BookingID         string    `json:"booking_id"`
	Type              string    `json:"type"`
	SenderEmail       string    `json:"sender_email"`
	ReceiverEmail     string    `json:"receiver_email"`
	LabSessionTitle   string    `json:"lab_session_title"`
	LabDate           string    `json:"lab_date"`
	LabStartTime      time.Time `json:"lab_start_time"`
	LabEndTime        time.Time `json:"lab_end_time"`
	IsReceiverConfirm bool      `json:"is_receiver_confirm"`
	IsLabWillGoingOn  bool      `json:"is_lab_will_going_on"`
}

func EventOf(n models.Notification) Event {
	return Event{
		NotificationID:    n.ID,
		BookingID:         n.BookingID,
		Type:              string(n.Type),
		SenderEmail:       n.SenderEmail,
		ReceiverEmail:     n.ReceiverEmail,
		LabSessionTitle:   n.LabSessionTitle,
		LabDate:           n.LabDate,
		LabStartTime:      n.LabStartTime,
		LabEndTime:        n.LabEndTime,
		IsReceiverConfirm: n.IsReceiverConfirm,
		IsLabWillGoingOn:  n.IsLabWillGoingOn,
	}
}

type Publisher struct {
	url      string
	exchange string
	prefix   string
	log      *slog.Logger
}

// NewPublisher returns a publisher that drops events when no broker URL is set.
func NewPublisher(cfg config.RabbitMQ, log *slog.Logger) notifier.Notifier {
	if cfg.URL == "" {
		return notifier.Noop()
	}

	return &Publisher{url: cfg.URL, exchange: cfg.Exchange, prefix: cfg.Prefix, log: log}
}

// RoutingKey is "<prefix>.<type>", or just the type without a prefix.
func RoutingKey(prefix string, typ models.NotificationType) string {
	if prefix == "" {
		return string(typ)
	}

	return prefix + "." + string(typ)
}

func (p *Publisher) Notify(ctx context.Context, n models.Notification) error {
	const op = "notifier.rabbitmq.Notify"

	payload, err := json.Marshal(EventOf(n))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.publish(ctx, payload, RoutingKey(p.prefix, n.Type)); err != nil {
		p.log.Error("rabbitmq publish failed", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (p *Publisher) publish(ctx context.Context, payload []byte, routingKey string) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         payload,
		},
	)
}
