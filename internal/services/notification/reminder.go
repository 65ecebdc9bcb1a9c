package notification

import (
	"context"
	"log/slog"
	"time"

	"labBooker/internal/lib/metrics"
	"labBooker/internal/models"
)

// RunReminderPass moves every same-day, non-cancelled notification to
// reminder. today is interpreted in the service's location.
func (s *Service) RunReminderPass(ctx context.Context, today time.Time) (int64, error) {
	const op = "services.notification.RunReminderPass"

	date := s.labDate(today)
	log := s.log.With(slog.String("op", op), slog.String("lab_date", date))

	typ := models.NotificationReminder

	updated, err := s.store.UpdateByDate(ctx, date, models.NotificationCancellation, models.NotificationPatch{Type: &typ})
	if err != nil {
		return 0, s.fail(log, op, err)
	}

	metrics.RemindersSent.Add(float64(updated))
	log.Info("reminder pass completed", slog.Int64("updated", updated))

	return updated, nil
}

// Today is the current instant in the service's location.
func (s *Service) Today() time.Time {
	return s.now().In(s.loc)
}
