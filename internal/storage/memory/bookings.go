package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"labBooker/internal/lib/timewindow"
	"labBooker/internal/models"
	"labBooker/internal/storage"
)

func (s *Storage) ReserveWindow(ctx context.Context, fn func(ctx context.Context, repo storage.BookingRepository) error) error {
	s.reserveMu.Lock()
	defer s.reserveMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(ctx, s)
}

func (s *Storage) CreateBooking(_ context.Context, b models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; ok {
		return fmt.Errorf("booking %s already exists", b.ID)
	}
	s.bookings[b.ID] = cloneBooking(b)

	return nil
}

func (s *Storage) GetBooking(_ context.Context, id string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, storage.ErrBookingNotFound
	}

	return cloneBooking(b), nil
}

func (s *Storage) FindOverlapping(_ context.Context, w timewindow.Window, excludeID string, excludeStatuses []models.BookingStatus) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []models.Booking
	for id, b := range s.bookings {
		if excludeID != "" && id == excludeID {
			continue
		}
		if slices.Contains(excludeStatuses, b.Status) {
			continue
		}
		if !w.Overlaps(timewindow.Window{Start: b.StartTime, End: b.EndTime}) {
			continue
		}
		res = append(res, cloneBooking(b))
	}

	sortByStart(res)

	return res, nil
}

func (s *Storage) UpdateBooking(_ context.Context, b models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; !ok {
		return storage.ErrBookingNotFound
	}
	s.bookings[b.ID] = cloneBooking(b)

	return nil
}

func (s *Storage) UpdateBookingStatus(_ context.Context, id string, status models.BookingStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = at
	s.bookings[id] = b

	return nil
}

func (s *Storage) DeleteBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return storage.ErrBookingNotFound
	}
	delete(s.bookings, id)

	return nil
}

func (s *Storage) ListBookingsByStatus(_ context.Context, status models.BookingStatus) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []models.Booking
	for _, b := range s.bookings {
		if status != "" && b.Status != status {
			continue
		}
		res = append(res, cloneBooking(b))
	}

	sortByStart(res)

	return res, nil
}

func (s *Storage) CountBookings(_ context.Context, status models.BookingStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status == "" {
		return len(s.bookings), nil
	}

	n := 0
	for _, b := range s.bookings {
		if b.Status == status {
			n++
		}
	}

	return n, nil
}

func sortByStart(bs []models.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		return bs[i].StartTime.Before(bs[j].StartTime)
	})
}
