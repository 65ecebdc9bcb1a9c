package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labBooker/internal/lib/timewindow"
	"labBooker/internal/models"
	"labBooker/internal/storage"
)

var testTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "unable to open the mock database connection")
	t.Cleanup(func() { _ = db.Close() })

	return New(db, 7), mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestReserveWindowCommits(t *testing.T) {
	s, mock := newMockStorage(t)
	ctx := context.Background()

	// Set up the expectations.
	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock\\(\\$1\\)").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.ReserveWindow(ctx, func(ctx context.Context, repo storage.BookingRepository) error {
		return repo.CreateBooking(ctx, models.Booking{
			ID:        "b-1",
			Title:     "Spectroscopy",
			StartTime: testTime,
			EndTime:   testTime.Add(time.Hour),
			Attendees: []string{"x@e.com"},
			Status:    models.BookingPending,
			CreatedAt: testTime,
			UpdatedAt: testTime,
		})
	})
	require.NoError(t, err)

	// Verify that all mock expectations were met.
	assert.NoError(t, mock.ExpectationsWereMet(), "not all mock expectations were met")
}

func TestReserveWindowRollsBackOnError(t *testing.T) {
	s, mock := newMockStorage(t)
	ctx := context.Background()
	fnErr := errors.New("window taken")

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.ReserveWindow(ctx, func(context.Context, storage.BookingRepository) error {
		return fnErr
	})
	require.ErrorIs(t, err, fnErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOverlapping(t *testing.T) {
	s, mock := newMockStorage(t)
	ctx := context.Background()

	w := timewindow.Window{Start: testTime, End: testTime.Add(time.Hour)}

	rows := bookingRows().AddRow(
		"b-1", "Spectroscopy", "", testTime.Add(-30*time.Minute), testTime.Add(30*time.Minute),
		"{x@e.com,y@e.com}", "confirmed", testTime, testTime,
	)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE (.+)start_time >= \\$1(.+) AND id <> \\$7 AND status NOT IN \\(\\$8\\) ORDER BY start_time").
		WithArgs(w.Start, w.End, w.Start, w.End, w.Start, w.End, "b-2", "cancelled").
		WillReturnRows(rows)

	got, err := s.FindOverlapping(ctx, w, "b-2", []models.BookingStatus{models.BookingCancelled})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b-1", got[0].ID)
	assert.Equal(t, models.BookingConfirmed, got[0].Status)
	assert.Equal(t, []string{"x@e.com", "y@e.com"}, got[0].Attendees)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingNotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(bookingRows())

	_, err := s.GetBooking(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatusNoRows(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE bookings SET status = \\$1, updated_at = \\$2 WHERE id = \\$3").
		WithArgs("cancelled", testTime, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateBookingStatus(context.Background(), "missing", models.BookingCancelled, testTime)
	require.ErrorIs(t, err, storage.ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountBookings(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE status = \\$1").
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := s.CountBookings(context.Background(), models.BookingPending)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
