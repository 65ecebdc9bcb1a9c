package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"labBooker/internal/lib/apperror"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/lib/metrics"
	"labBooker/internal/models"
	"labBooker/internal/storage"
)

// Notifier delivers a notification outside the system (email, message bus).
// Delivery is best-effort: failures are logged, never returned to callers.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

type Service struct {
	log      *slog.Logger
	store    storage.NotificationStore
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the zone lab dates are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.loc = loc
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func New(log *slog.Logger, store storage.NotificationStore, opts ...Option) *Service {
	s := &Service{
		log:   log,
		store: store,
		loc:   time.UTC,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Get(ctx context.Context, id string) (models.Notification, error) {
	n, err := s.store.GetNotification(ctx, id)
	if errors.Is(err, storage.ErrNotificationNotFound) {
		return models.Notification{}, apperror.NotFound("notification", id)
	}
	if err != nil {
		return models.Notification{}, fmt.Errorf("services.notification.Get: %w", err)
	}

	return n, nil
}

func (s *Service) Received(ctx context.Context, receiver string, f models.NotificationFilter) ([]models.Notification, error) {
	const op = "services.notification.Received"

	ns, err := s.store.ListByReceiver(ctx, receiver, f)
	if err != nil {
		s.log.Error("failed to list received notifications", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ns, nil
}

func (s *Service) Sent(ctx context.Context, sender string, f models.NotificationFilter) ([]models.Notification, error) {
	const op = "services.notification.Sent"

	ns, err := s.store.ListBySender(ctx, sender, f)
	if err != nil {
		s.log.Error("failed to list sent notifications", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ns, nil
}

func (s *Service) deliver(ctx context.Context, ns []models.Notification) {
	if s.notifier == nil {
		return
	}

	for _, n := range ns {
		if err := s.notifier.Notify(ctx, n); err != nil {
			metrics.DeliveryFailures.Inc()
			s.log.Warn("failed to deliver notification",
				slog.String("id", n.ID),
				slog.String("receiver", n.ReceiverEmail),
				sl.Err(err),
			)
		}
	}
}

func (s *Service) labDate(t time.Time) string {
	return t.In(s.loc).Format(time.DateOnly)
}

// fail logs and returns err, wrapping it with op unless it is a business error.
func (s *Service) fail(log *slog.Logger, op string, err error) error {
	if apperror.IsBusiness(err) {
		log.Info("notification request rejected", slog.String("reason", err.Error()))
		return err
	}

	log.Error("notification operation failed", sl.Err(err))

	return fmt.Errorf("%s: %w", op, err)
}
