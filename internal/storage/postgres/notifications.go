package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"labBooker/internal/models"
	"labBooker/internal/storage"
)

var notificationColumns = []string{
	"id",
	"booking_id",
	"sender_email",
	"receiver_email",
	"lab_session_title",
	"lab_date",
	"lab_start_time",
	"lab_end_time",
	"message",
	"type",
	"is_receiver_confirm",
	"is_read",
	"is_lab_will_going_on",
	"created_at",
}

// notificationSelect renders lab_date back as YYYY-MM-DD.
func notificationSelect() sq.SelectBuilder {
	cols := make([]string, len(notificationColumns))
	copy(cols, notificationColumns)
	cols[5] = "to_char(lab_date, 'YYYY-MM-DD')"

	return psql.Select(cols...).From("notifications")
}

func scanNotification(row rowScanner) (models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID,
		&n.BookingID,
		&n.SenderEmail,
		&n.ReceiverEmail,
		&n.LabSessionTitle,
		&n.LabDate,
		&n.LabStartTime,
		&n.LabEndTime,
		&n.Message,
		&n.Type,
		&n.IsReceiverConfirm,
		&n.IsRead,
		&n.IsLabWillGoingOn,
		&n.CreatedAt,
	)

	return n, err
}

// CreateNotifications writes the whole batch in a single INSERT, so a failure
// leaves no partial fan-out behind.
func (s *Storage) CreateNotifications(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	builder := psql.Insert("notifications").Columns(notificationColumns...)
	for _, n := range ns {
		builder = builder.Values(
			n.ID,
			n.BookingID,
			n.SenderEmail,
			n.ReceiverEmail,
			n.LabSessionTitle,
			n.LabDate,
			n.LabStartTime,
			n.LabEndTime,
			n.Message,
			string(n.Type),
			n.IsReceiverConfirm,
			n.IsRead,
			n.IsLabWillGoingOn,
			n.CreatedAt,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build notification insert: %w", err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}

	return nil
}

func (s *Storage) GetNotification(ctx context.Context, id string) (models.Notification, error) {
	query, args, err := notificationSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to build notification query: %w", err)
	}

	n, err := scanNotification(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Notification{}, storage.ErrNotificationNotFound
		}
		return models.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

func (s *Storage) ListByReceiver(ctx context.Context, email string, f models.NotificationFilter) ([]models.Notification, error) {
	return s.listNotifications(ctx, filtered(notificationSelect().Where(sq.Eq{"receiver_email": email}), f))
}

func (s *Storage) ListBySender(ctx context.Context, email string, f models.NotificationFilter) ([]models.Notification, error) {
	return s.listNotifications(ctx, filtered(notificationSelect().Where(sq.Eq{"sender_email": email}), f))
}

func (s *Storage) ListByBooking(ctx context.Context, bookingID string) ([]models.Notification, error) {
	return s.listNotifications(ctx, notificationSelect().Where(sq.Eq{"booking_id": bookingID}))
}

func (s *Storage) UpdateNotification(ctx context.Context, id string, fromTypes []models.NotificationType, p models.NotificationPatch) error {
	where := sq.And{sq.Eq{"id": id}}
	if len(fromTypes) > 0 {
		where = append(where, sq.Eq{"type": typeStrings(fromTypes)})
	}

	n, err := s.execUpdate(ctx, where, p)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if _, err = s.GetNotification(ctx, id); err != nil {
		return err
	}

	return storage.ErrNotificationChanged
}

func (s *Storage) UpdateByBooking(ctx context.Context, bookingID string, fromTypes []models.NotificationType, p models.NotificationPatch) (int64, error) {
	where := sq.And{sq.Eq{"booking_id": bookingID}}
	if len(fromTypes) > 0 {
		where = append(where, sq.Eq{"type": typeStrings(fromTypes)})
	}

	return s.execUpdate(ctx, where, p)
}

func (s *Storage) UpdateByDate(ctx context.Context, labDate string, excludeType models.NotificationType, p models.NotificationPatch) (int64, error) {
	return s.execUpdate(ctx, sq.And{
		sq.Eq{"lab_date": labDate},
		sq.NotEq{"type": string(excludeType)},
	}, p)
}

func (s *Storage) execUpdate(ctx context.Context, where sq.Sqlizer, p models.NotificationPatch) (int64, error) {
	query, args, err := psql.
		Update("notifications").
		SetMap(patchMap(p)).
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build notification update: %w", err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update notifications: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to update notifications: %w", err)
	}

	return rowsAffected, nil
}

func (s *Storage) listNotifications(ctx context.Context, builder sq.SelectBuilder) ([]models.Notification, error) {
	query, args, err := builder.OrderBy("created_at DESC", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build notifications query: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	defer rows.Close()

	var ns []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		ns = append(ns, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return ns, nil
}

func filtered(builder sq.SelectBuilder, f models.NotificationFilter) sq.SelectBuilder {
	if f.Type != nil {
		builder = builder.Where(sq.Eq{"type": string(*f.Type)})
	}
	if f.IsRead != nil {
		builder = builder.Where(sq.Eq{"is_read": *f.IsRead})
	}

	return builder
}

func patchMap(p models.NotificationPatch) map[string]interface{} {
	set := make(map[string]interface{}, 4)
	if p.Type != nil {
		set["type"] = string(*p.Type)
	}
	if p.IsReceiverConfirm != nil {
		set["is_receiver_confirm"] = *p.IsReceiverConfirm
	}
	if p.IsRead != nil {
		set["is_read"] = *p.IsRead
	}
	if p.IsLabWillGoingOn != nil {
		set["is_lab_will_going_on"] = *p.IsLabWillGoingOn
	}

	return set
}

func typeStrings(types []models.NotificationType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}

	return out
}
