package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"labBooker/internal/lib/timewindow"
	"labBooker/internal/models"
	"labBooker/internal/storage"
)

var bookingColumns = []string{
	"id",
	"title",
	"description",
	"start_time",
	"end_time",
	"attendees",
	"status",
	"created_at",
	"updated_at",
}

type bookingRepo struct {
	q queryer
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.StartTime,
		&b.EndTime,
		pq.Array(&b.Attendees),
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	return b, err
}

func (r bookingRepo) CreateBooking(ctx context.Context, b models.Booking) error {
	query, args, err := psql.
		Insert("bookings").
		Columns(bookingColumns...).
		Values(
			b.ID,
			b.Title,
			b.Description,
			b.StartTime,
			b.EndTime,
			pq.Array(b.Attendees),
			string(b.Status),
			b.CreatedAt,
			b.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build booking insert: %w", err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r bookingRepo) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	query, args, err := psql.
		Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to build booking query: %w", err)
	}

	b, err := scanBooking(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, storage.ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

func (r bookingRepo) FindOverlapping(ctx context.Context, w timewindow.Window, excludeID string, excludeStatuses []models.BookingStatus) ([]models.Booking, error) {
	builder := psql.
		Select(bookingColumns...).
		From("bookings").
		Where(sq.Or{
			// existing starts inside the window
			sq.And{sq.GtOrEq{"start_time": w.Start}, sq.Lt{"start_time": w.End}},
			// existing ends inside the window
			sq.And{sq.Gt{"end_time": w.Start}, sq.LtOrEq{"end_time": w.End}},
			// existing contains the window
			sq.And{sq.LtOrEq{"start_time": w.Start}, sq.GtOrEq{"end_time": w.End}},
		}).
		OrderBy("start_time")

	if excludeID != "" {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}
	if len(excludeStatuses) > 0 {
		builder = builder.Where(sq.NotEq{"status": statusStrings(excludeStatuses)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build overlap query: %w", err)
	}

	return r.queryBookings(ctx, query, args...)
}

func (r bookingRepo) UpdateBooking(ctx context.Context, b models.Booking) error {
	query, args, err := psql.
		Update("bookings").
		Set("title", b.Title).
		Set("description", b.Description).
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("attendees", pq.Array(b.Attendees)).
		Set("status", string(b.Status)).
		Set("updated_at", b.UpdatedAt).
		Where(sq.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build booking update: %w", err)
	}

	return r.execOne(ctx, "failed to update booking", query, args...)
}

func (r bookingRepo) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus, at time.Time) error {
	query, args, err := psql.
		Update("bookings").
		Set("status", string(status)).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status update: %w", err)
	}

	return r.execOne(ctx, "failed to update booking status", query, args...)
}

func (r bookingRepo) DeleteBooking(ctx context.Context, id string) error {
	query, args, err := psql.
		Delete("bookings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build booking delete: %w", err)
	}

	return r.execOne(ctx, "failed to delete booking", query, args...)
}

func (r bookingRepo) ListBookingsByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	builder := psql.
		Select(bookingColumns...).
		From("bookings").
		OrderBy("start_time")
	if status != "" {
		builder = builder.Where(sq.Eq{"status": string(status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bookings query: %w", err)
	}

	return r.queryBookings(ctx, query, args...)
}

func (r bookingRepo) CountBookings(ctx context.Context, status models.BookingStatus) (int, error) {
	builder := psql.Select("COUNT(*)").From("bookings")
	if status != "" {
		builder = builder.Where(sq.Eq{"status": string(status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return n, nil
}

func (r bookingRepo) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// execOne runs a statement that must touch exactly one booking row.
func (r bookingRepo) execOne(ctx context.Context, msg, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	if rowsAffected == 0 {
		return storage.ErrBookingNotFound
	}

	return nil
}

func statusStrings(statuses []models.BookingStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}

	return out
}
