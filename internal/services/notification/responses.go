package notification

import (
	"context"
	"errors"
	"log/slog"

	"labBooker/internal/lib/apperror"
	"labBooker/internal/lib/email"
	"labBooker/internal/lib/metrics"
	"labBooker/internal/models"
	"labBooker/internal/storage"
)

// Accept records the caller's acceptance on their own notification.
func (s *Service) Accept(ctx context.Context, id, callerEmail string) (models.Notification, error) {
	typ, confirm, unread := models.NotificationBookingConfirmation, true, false

	return s.respond(ctx, "services.notification.Accept", id, callerEmail, models.NotificationPatch{
		Type:              &typ,
		IsReceiverConfirm: &confirm,
		IsRead:            &unread,
	})
}

// Reject records the caller's refusal. IsLabWillGoingOn is left untouched:
// one attendee declining does not call the session off.
func (s *Service) Reject(ctx context.Context, id, callerEmail string) (models.Notification, error) {
	typ, unread := models.NotificationRejected, false

	return s.respond(ctx, "services.notification.Reject", id, callerEmail, models.NotificationPatch{
		Type:   &typ,
		IsRead: &unread,
	})
}

func (s *Service) MarkRead(ctx context.Context, id, callerEmail string) (models.Notification, error) {
	read := true

	return s.respond(ctx, "services.notification.MarkRead", id, callerEmail, models.NotificationPatch{
		IsRead: &read,
	})
}

func (s *Service) respond(ctx context.Context, op, id, callerEmail string, p models.NotificationPatch) (models.Notification, error) {
	log := s.log.With(slog.String("op", op), slog.String("id", id))

	n, err := s.Get(ctx, id)
	if err != nil {
		return models.Notification{}, s.fail(log, op, err)
	}

	if email.Canonical(callerEmail) != email.Canonical(n.ReceiverEmail) {
		return models.Notification{}, s.fail(log, op, &apperror.AuthorizationError{
			Reason: "only the receiver can respond to this notification",
		})
	}

	var fromTypes []models.NotificationType
	if p.Type != nil {
		if !n.Type.CanTransitionTo(*p.Type) {
			return models.Notification{}, s.fail(log, op, illegalTransition(id, n.Type, *p.Type))
		}
		fromTypes = models.SourcesOf(*p.Type)
	}

	err = s.store.UpdateNotification(ctx, id, fromTypes, p)
	if errors.Is(err, storage.ErrNotificationChanged) {
		// A lab-wide update won the race; report against the type it left behind.
		current, getErr := s.Get(ctx, id)
		if getErr != nil {
			return models.Notification{}, s.fail(log, op, getErr)
		}
		return models.Notification{}, s.fail(log, op, illegalTransition(id, current.Type, *p.Type))
	}
	if err != nil {
		return models.Notification{}, s.fail(log, op, err)
	}

	p.Apply(&n)

	if p.Type != nil {
		metrics.AttendeeResponses.WithLabelValues(string(*p.Type)).Inc()
	}
	log.Info("notification updated", slog.String("type", string(n.Type)))

	return n, nil
}

func illegalTransition(id string, from, to models.NotificationType) error {
	return apperror.State(apperror.StateIllegalTransition, "notification %s cannot go from %s to %s", id, from, to)
}
