package memory

import (
	"log/slog"
	"sync"

	"labBooker/internal/models"
)

// Storage keeps bookings and notifications in process. It is used by tests
// and by `storage: memory` deployments; it is not durable.
type Storage struct {
	// reserveMu serialises ReserveWindow callers.
	reserveMu sync.Mutex

	mu            sync.RWMutex
	bookings      map[string]models.Booking
	notifications map[string]models.Notification
	order         []string

	log *slog.Logger
}

func New(log *slog.Logger) *Storage {
	return &Storage{
		bookings:      make(map[string]models.Booking),
		notifications: make(map[string]models.Notification),
		log:           log,
	}
}

func cloneBooking(b models.Booking) models.Booking {
	b.Attendees = append([]string(nil), b.Attendees...)
	return b
}
