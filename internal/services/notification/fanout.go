package notification

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"labBooker/internal/lib/apperror"
	"labBooker/internal/lib/email"
	"labBooker/internal/lib/metrics"
	"labBooker/internal/models"
)

// Template carries the booking facts copied into every attendee's notification.
type Template struct {
	BookingID       string
	SenderEmail     string
	LabSessionTitle string
	LabStartTime    time.Time
	LabEndTime      time.Time
	Message         string
}

func TemplateFor(b models.Booking, senderEmail, message string) Template {
	return Template{
		BookingID:       b.ID,
		SenderEmail:     senderEmail,
		LabSessionTitle: b.Title,
		LabStartTime:    b.StartTime,
		LabEndTime:      b.EndTime,
		Message:         message,
	}
}

// FanOut creates one request notification per distinct attendee. The batch is
// written all-or-nothing.
func (s *Service) FanOut(ctx context.Context, attendees []string, tmpl Template) ([]models.Notification, error) {
	const op = "services.notification.FanOut"

	log := s.log.With(slog.String("op", op), slog.String("booking_id", tmpl.BookingID))

	if strings.TrimSpace(tmpl.BookingID) == "" {
		return nil, apperror.Validation("booking_id", apperror.CodeMissing, "booking id is required")
	}

	sender := email.Canonical(tmpl.SenderEmail)
	if err := email.Validate(sender); err != nil {
		return nil, apperror.Validation("sender_email", apperror.CodeInvalid, "invalid sender email %q", tmpl.SenderEmail)
	}

	recipients, err := email.NormalizeList("attendees", attendees)
	if err != nil {
		return nil, err
	}

	now := s.now()
	labDate := s.labDate(tmpl.LabStartTime)

	ns := make([]models.Notification, 0, len(recipients))
	for _, to := range recipients {
		ns = append(ns, models.Notification{
			ID:                uuid.NewString(),
			BookingID:         tmpl.BookingID,
			SenderEmail:       sender,
			ReceiverEmail:     to,
			LabSessionTitle:   tmpl.LabSessionTitle,
			LabDate:           labDate,
			LabStartTime:      tmpl.LabStartTime,
			LabEndTime:        tmpl.LabEndTime,
			Message:           tmpl.Message,
			Type:              models.NotificationRequest,
			IsReceiverConfirm: false,
			IsRead:            false,
			IsLabWillGoingOn:  true,
			CreatedAt:         now,
		})
	}

	if err = s.store.CreateNotifications(ctx, ns); err != nil {
		return nil, s.fail(log, op, err)
	}

	metrics.NotificationsFannedOut.Add(float64(len(ns)))
	log.Info("notifications fanned out", slog.Int("count", len(ns)))

	s.deliver(ctx, ns)

	return ns, nil
}
