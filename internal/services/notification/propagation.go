package notification

import (
	"context"
	"log/slog"

	"labBooker/internal/lib/apperror"
	"labBooker/internal/lib/metrics"
	"labBooker/internal/models"
)

type LabUpdate struct {
	Notification models.Notification `json:"notification"`
	UpdatedCount int64               `json:"updated_count"`
}

// ConfirmLab marks every notification of the session as confirmed, replacing
// whatever each attendee answered.
func (s *Service) ConfirmLab(ctx context.Context, notificationID string) (LabUpdate, error) {
	typ, on, unread := models.NotificationConfirmed, true, false

	return s.propagate(ctx, "services.notification.ConfirmLab", notificationID, models.NotificationPatch{
		Type:             &typ,
		IsLabWillGoingOn: &on,
		IsRead:           &unread,
	})
}

func (s *Service) CancelLab(ctx context.Context, notificationID string) (LabUpdate, error) {
	typ, off, unread := models.NotificationCancellation, false, false

	return s.propagate(ctx, "services.notification.CancelLab", notificationID, models.NotificationPatch{
		Type:             &typ,
		IsLabWillGoingOn: &off,
		IsRead:           &unread,
	})
}

func (s *Service) propagate(ctx context.Context, op, notificationID string, p models.NotificationPatch) (LabUpdate, error) {
	log := s.log.With(slog.String("op", op), slog.String("notification_id", notificationID))

	n, err := s.Get(ctx, notificationID)
	if err != nil {
		return LabUpdate{}, s.fail(log, op, err)
	}

	if n.BookingID == "" {
		return LabUpdate{}, s.fail(log, op, apperror.NotFound("booking for notification", notificationID))
	}

	log = log.With(slog.String("booking_id", n.BookingID))
	target := *p.Type

	siblings, err := s.store.ListByBooking(ctx, n.BookingID)
	if err != nil {
		return LabUpdate{}, s.fail(log, op, err)
	}

	if err = checkPropagation(n.BookingID, target, siblings); err != nil {
		return LabUpdate{}, s.fail(log, op, err)
	}

	// Restricting to legal sources keeps a concurrent cancellation from being
	// overwritten between the check above and this write.
	updated, err := s.store.UpdateByBooking(ctx, n.BookingID, models.SourcesOf(target), p)
	if err != nil {
		return LabUpdate{}, s.fail(log, op, err)
	}

	if n.Type.CanTransitionTo(target) {
		p.Apply(&n)
	}

	metrics.LabPropagations.WithLabelValues(string(target)).Add(float64(updated))
	log.Info("lab status propagated", slog.String("type", string(target)), slog.Int64("updated", updated))

	changed := make([]models.Notification, 0, len(siblings))
	for _, sib := range siblings {
		if sib.Type.CanTransitionTo(target) {
			p.Apply(&sib)
			changed = append(changed, sib)
		}
	}
	s.deliver(ctx, changed)

	return LabUpdate{Notification: n, UpdatedCount: updated}, nil
}

// checkPropagation rejects confirming a session that was already cancelled,
// and cancelling one with nothing left to cancel.
func checkPropagation(bookingID string, target models.NotificationType, siblings []models.Notification) error {
	movable := 0
	for _, sib := range siblings {
		if sib.Type.CanTransitionTo(target) {
			movable++
			continue
		}
		if target == models.NotificationConfirmed && sib.Type == models.NotificationCancellation {
			return apperror.State(apperror.StateBookingCancelled, "lab session for booking %s has been cancelled", bookingID)
		}
	}

	if movable == 0 && target == models.NotificationCancellation {
		return apperror.State(apperror.StateAlreadyCancelled, "lab session for booking %s is already cancelled", bookingID)
	}

	return nil
}
