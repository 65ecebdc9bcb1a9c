package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labBooker/internal/models"
	"labBooker/internal/storage"
)

func notificationRows() *sqlmock.Rows {
	return sqlmock.NewRows(notificationColumns)
}

func TestCreateNotificationsSingleStatement(t *testing.T) {
	s, mock := newMockStorage(t)

	ns := []models.Notification{
		{ID: "n-1", BookingID: "b-1", ReceiverEmail: "x@e.com", LabDate: "2026-03-02", Type: models.NotificationRequest},
		{ID: "n-2", BookingID: "b-1", ReceiverEmail: "y@e.com", LabDate: "2026-03-02", Type: models.NotificationRequest},
	}

	mock.ExpectExec("INSERT INTO notifications \\((.+)\\) VALUES \\((.+)\\),\\((.+)\\)").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, s.CreateNotifications(context.Background(), ns))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNotificationsFailureIsReported(t *testing.T) {
	s, mock := newMockStorage(t)
	dbErr := errors.New("unique violation")

	mock.ExpectExec("INSERT INTO notifications").WillReturnError(dbErr)

	err := s.CreateNotifications(context.Background(), []models.Notification{{ID: "n-1"}})
	require.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotification(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT (.+)to_char\\(lab_date, 'YYYY-MM-DD'\\)(.+) FROM notifications WHERE id = \\$1").
		WithArgs("n-1").
		WillReturnRows(notificationRows().AddRow(
			"n-1", "b-1", "lecturer@e.com", "x@e.com", "Spectroscopy", "2026-03-02",
			testTime, testTime.Add(time.Hour), "see you", "request", false, false, true, testTime,
		))

	n, err := s.GetNotification(context.Background(), "n-1")
	require.NoError(t, err)
	assert.Equal(t, "b-1", n.BookingID)
	assert.Equal(t, "2026-03-02", n.LabDate)
	assert.Equal(t, models.NotificationRequest, n.Type)
	assert.True(t, n.IsLabWillGoingOn)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotificationNotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	read := true
	mock.ExpectExec("UPDATE notifications SET is_read = \\$1 WHERE \\(id = \\$2\\)").
		WithArgs(true, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(notificationRows())

	err := s.UpdateNotification(context.Background(), "missing", nil, models.NotificationPatch{IsRead: &read})
	require.ErrorIs(t, err, storage.ErrNotificationNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotificationGuardsType(t *testing.T) {
	s, mock := newMockStorage(t)

	typ := models.NotificationBookingConfirmation
	confirm := true

	mock.ExpectExec("UPDATE notifications SET is_receiver_confirm = \\$1, type = \\$2 WHERE \\(id = \\$3 AND type IN \\(\\$4,\\$5\\)\\)").
		WithArgs(true, "booking_confirmation", "n-1", "request", "rejected").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE id = \\$1").
		WithArgs("n-1").
		WillReturnRows(notificationRows().AddRow(
			"n-1", "b-1", "lecturer@e.com", "x@e.com", "Spectroscopy", "2026-03-02",
			testTime, testTime.Add(time.Hour), "see you", "cancellation", false, false, false, testTime,
		))

	err := s.UpdateNotification(context.Background(), "n-1",
		[]models.NotificationType{models.NotificationRequest, models.NotificationRejected},
		models.NotificationPatch{Type: &typ, IsReceiverConfirm: &confirm},
	)
	require.ErrorIs(t, err, storage.ErrNotificationChanged)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByBooking(t *testing.T) {
	s, mock := newMockStorage(t)

	typ := models.NotificationConfirmed
	on, unread := true, false

	mock.ExpectExec("UPDATE notifications SET is_lab_will_going_on = \\$1, is_read = \\$2, type = \\$3 WHERE \\(booking_id = \\$4\\)").
		WithArgs(true, false, "confirmed", "b-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.UpdateByBooking(context.Background(), "b-1", nil, models.NotificationPatch{
		Type:             &typ,
		IsLabWillGoingOn: &on,
		IsRead:           &unread,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByDate(t *testing.T) {
	s, mock := newMockStorage(t)

	typ := models.NotificationReminder

	mock.ExpectExec("UPDATE notifications SET type = \\$1 WHERE \\(lab_date = \\$2 AND type <> \\$3\\)").
		WithArgs("reminder", "2026-03-02", "cancellation").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := s.UpdateByDate(context.Background(), "2026-03-02", models.NotificationCancellation, models.NotificationPatch{Type: &typ})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByReceiverWithFilter(t *testing.T) {
	s, mock := newMockStorage(t)

	typ := models.NotificationRequest
	unread := false

	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE receiver_email = \\$1 AND type = \\$2 AND is_read = \\$3 ORDER BY created_at DESC, id").
		WithArgs("x@e.com", "request", false).
		WillReturnRows(notificationRows())

	ns, err := s.ListByReceiver(context.Background(), "x@e.com", models.NotificationFilter{Type: &typ, IsRead: &unread})
	require.NoError(t, err)
	assert.Empty(t, ns)

	assert.NoError(t, mock.ExpectationsWereMet())
}
