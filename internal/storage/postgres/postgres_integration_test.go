//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"labBooker/internal/lib/apperror"
	"labBooker/internal/lib/logger/handlers/slogdiscard"
	"labBooker/internal/models"
	"labBooker/internal/services/availability"
	"labBooker/internal/services/booking"
	"labBooker/internal/services/notification"
)

func setupPostgresContainer(t *testing.T, ctx context.Context) *Storage {
	t.Helper()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("lab_booker_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	s := New(db, 1)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(ctx))
	// applying twice must be harmless
	require.NoError(t, s.Migrate(ctx))

	return s
}

func TestPostgresConcurrentCreatesAdmitOne(t *testing.T) {
	ctx := context.Background()
	s := setupPostgresContainer(t, ctx)

	log := slogdiscard.NewDiscardLogger()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	mgr := booking.New(log, s, availability.New(log, s), booking.WithClock(func() time.Time { return now }))

	const workers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := mgr.Create(ctx, booking.CreateInput{
				Title:     "Titration",
				StartTime: "2026-03-02T10:00:00Z",
				EndTime:   "2026-03-02T11:00:00Z",
				Attendees: []string{"x@e.com"},
			})

			mu.Lock()
			defer mu.Unlock()

			var conflictErr *apperror.ConflictError
			switch {
			case err == nil:
				created++
			case errors.As(err, &conflictErr):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)

	total, err := s.CountBookings(ctx, models.BookingPending)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestPostgresBookingLifecycle(t *testing.T) {
	ctx := context.Background()
	s := setupPostgresContainer(t, ctx)

	log := slogdiscard.NewDiscardLogger()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	checker := availability.New(log, s)
	mgr := booking.New(log, s, checker, booking.WithClock(func() time.Time { return now }))

	b, err := mgr.Create(ctx, booking.CreateInput{
		Title:     "Spectroscopy",
		StartTime: "2026-03-02T10:00:00Z",
		EndTime:   "2026-03-02T11:00:00Z",
		Attendees: []string{"Y@e.com", "x@e.com", "y@e.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"y@e.com", "x@e.com"}, b.Attendees)

	got, err := mgr.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, b.StartTime.Equal(got.StartTime))
	assert.Equal(t, b.Attendees, got.Attendees)

	res, err := checker.Check(ctx, "2026-03-02T10:30:00Z", "2026-03-02T11:30:00Z", "")
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, b.ID, res.Conflicts[0].ID)

	// touching windows do not overlap
	res, err = checker.Check(ctx, "2026-03-02T11:00:00Z", "2026-03-02T12:00:00Z", "")
	require.NoError(t, err)
	assert.True(t, res.Available)

	confirmed, err := mgr.Confirm(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)

	_, err = mgr.Cancel(ctx, b.ID)
	require.NoError(t, err)

	res, err = checker.Check(ctx, "2026-03-02T10:30:00Z", "2026-03-02T11:30:00Z", "")
	require.NoError(t, err)
	assert.True(t, res.Available)

	require.NoError(t, mgr.Delete(ctx, b.ID))

	_, err = mgr.Get(ctx, b.ID)
	var notFound *apperror.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestPostgresNotificationFlow(t *testing.T) {
	ctx := context.Background()
	s := setupPostgresContainer(t, ctx)

	log := slogdiscard.NewDiscardLogger()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := notification.New(log, s, notification.WithClock(func() time.Time { return now }))

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tmpl := notification.TemplateFor(models.Booking{
		ID:        "7d3c9a52-2b0f-4c36-9d07-5a3f0d7d4c11",
		Title:     "Titration",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}, "lecturer@e.com", "")

	ns, err := svc.FanOut(ctx, []string{"x@e.com", "y@e.com", "z@e.com"}, tmpl)
	require.NoError(t, err)
	require.Len(t, ns, 3)

	stored, err := s.GetNotification(ctx, ns[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", stored.LabDate)
	assert.Equal(t, models.NotificationRequest, stored.Type)

	_, err = svc.Reject(ctx, ns[1].ID, "y@e.com")
	require.NoError(t, err)

	_, err = svc.Accept(ctx, ns[1].ID, "x@e.com")
	var authErr *apperror.AuthorizationError
	require.True(t, errors.As(err, &authErr))

	read := false
	inbox, err := svc.Received(ctx, "y@e.com", models.NotificationFilter{IsRead: &read})
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, models.NotificationRejected, inbox[0].Type)

	upd, err := svc.ConfirmLab(ctx, ns[2].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), upd.UpdatedCount)

	reminded, err := svc.RunReminderPass(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), reminded)

	upd, err = svc.CancelLab(ctx, ns[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), upd.UpdatedCount)

	reminded, err = svc.RunReminderPass(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, reminded)

	sent, err := svc.Sent(ctx, "lecturer@e.com", models.NotificationFilter{})
	require.NoError(t, err)
	for _, n := range sent {
		assert.Equal(t, models.NotificationCancellation, n.Type)
		assert.False(t, n.IsLabWillGoingOn)
	}
}
