package storage

import (
	"context"
	"errors"
	"time"

	"labBooker/internal/lib/timewindow"
	"labBooker/internal/models"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrNotificationChanged means the row exists but its type is no longer
	// one of the expected source types.
	ErrNotificationChanged = errors.New("notification changed concurrently")
)

// OverlapFinder returns bookings whose interval intersects w, skipping
// excludeID (when non-empty) and any booking in excludeStatuses.
type OverlapFinder interface {
	FindOverlapping(ctx context.Context, w timewindow.Window, excludeID string, excludeStatuses []models.BookingStatus) ([]models.Booking, error)
}

type BookingRepository interface {
	OverlapFinder
	CreateBooking(ctx context.Context, b models.Booking) error
	GetBooking(ctx context.Context, id string) (models.Booking, error)
	UpdateBooking(ctx context.Context, b models.Booking) error
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus, at time.Time) error
	DeleteBooking(ctx context.Context, id string) error
	ListBookingsByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	CountBookings(ctx context.Context, status models.BookingStatus) (int, error)
}

// BookingStore adds the reservation primitive: fn runs with a repository
// whose reads and writes are serialised against every other ReserveWindow
// call on the same lab, and are committed only if fn returns nil.
type BookingStore interface {
	BookingRepository
	ReserveWindow(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error
}

type NotificationStore interface {
	// CreateNotifications inserts all rows or none.
	CreateNotifications(ctx context.Context, ns []models.Notification) error
	GetNotification(ctx context.Context, id string) (models.Notification, error)
	ListByReceiver(ctx context.Context, email string, f models.NotificationFilter) ([]models.Notification, error)
	ListBySender(ctx context.Context, email string, f models.NotificationFilter) ([]models.Notification, error)
	ListByBooking(ctx context.Context, bookingID string) ([]models.Notification, error)
	// UpdateNotification patches id only while its type is in fromTypes (any
	// type when empty).
	UpdateNotification(ctx context.Context, id string, fromTypes []models.NotificationType, p models.NotificationPatch) error
	// UpdateByBooking patches every notification of bookingID whose type is in
	// fromTypes (all types when empty) and returns how many rows changed.
	UpdateByBooking(ctx context.Context, bookingID string, fromTypes []models.NotificationType, p models.NotificationPatch) (int64, error)
	// UpdateByDate patches every notification with the given lab date
	// (YYYY-MM-DD) whose type is not excludeType.
	UpdateByDate(ctx context.Context, labDate string, excludeType models.NotificationType, p models.NotificationPatch) (int64, error)
}
