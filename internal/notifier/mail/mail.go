package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"labBooker/internal/config"
	"labBooker/internal/models"
)

const timeLayout = "15:04"

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer emails each notification to its receiver.
type Mailer struct {
	log    *slog.Logger
	from   string
	dialer sender
}

// New returns nil when no SMTP host is configured.
func New(log *slog.Logger, cfg config.SMTP) *Mailer {
	if cfg.Host == "" {
		return nil
	}

	return &Mailer{
		log:    log,
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (m *Mailer) Notify(_ context.Context, n models.Notification) error {
	const op = "notifier.mail.Notify"

	subject, body := Compose(n)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", n.ReceiverEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.log.Debug("notification emailed",
		slog.String("op", op),
		slog.String("notification_id", n.ID),
		slog.String("type", string(n.Type)),
	)

	return nil
}

// Compose renders the subject and plain-text body for a notification.
func Compose(n models.Notification) (string, string) {
	var subject string

	switch n.Type {
	case models.NotificationRequest:
		subject = "Lab session request: " + n.LabSessionTitle
	case models.NotificationBookingConfirmation:
		subject = "Attendance confirmed: " + n.LabSessionTitle
	case models.NotificationRejected:
		subject = "Attendance declined: " + n.LabSessionTitle
	case models.NotificationConfirmed:
		subject = "Lab session confirmed: " + n.LabSessionTitle
	case models.NotificationCancellation:
		subject = "Lab session cancelled: " + n.LabSessionTitle
	case models.NotificationReminder:
		subject = "Reminder: " + n.LabSessionTitle + " is today"
	default:
		subject = n.LabSessionTitle
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", n.LabSessionTitle)
	fmt.Fprintf(&b, "Date: %s\n", n.LabDate)
	fmt.Fprintf(&b, "Time: %s - %s\n", n.LabStartTime.Format(timeLayout), n.LabEndTime.Format(timeLayout))
	fmt.Fprintf(&b, "From: %s\n", n.SenderEmail)

	if n.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", n.Message)
	}

	if !n.IsLabWillGoingOn {
		b.WriteString("\nThis session will not take place.\n")
	}

	return subject, b.String()
}
