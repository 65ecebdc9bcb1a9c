package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"labBooker/internal/models"
	"labBooker/internal/storage"
)

func (s *Storage) CreateNotifications(_ context.Context, ns []models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range ns {
		if _, ok := s.notifications[n.ID]; ok {
			return fmt.Errorf("notification %s already exists", n.ID)
		}
	}

	for _, n := range ns {
		s.notifications[n.ID] = n
		s.order = append(s.order, n.ID)
	}

	s.log.Debug("notifications stored", slog.String("op", "storage.memory.CreateNotifications"), slog.Int("count", len(ns)))

	return nil
}

func (s *Storage) GetNotification(_ context.Context, id string) (models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[id]
	if !ok {
		return models.Notification{}, storage.ErrNotificationNotFound
	}

	return n, nil
}

func (s *Storage) ListByReceiver(_ context.Context, email string, f models.NotificationFilter) ([]models.Notification, error) {
	return s.list(func(n models.Notification) bool {
		return n.ReceiverEmail == email && f.Matches(n)
	}), nil
}

func (s *Storage) ListBySender(_ context.Context, email string, f models.NotificationFilter) ([]models.Notification, error) {
	return s.list(func(n models.Notification) bool {
		return n.SenderEmail == email && f.Matches(n)
	}), nil
}

func (s *Storage) ListByBooking(_ context.Context, bookingID string) ([]models.Notification, error) {
	return s.list(func(n models.Notification) bool {
		return n.BookingID == bookingID
	}), nil
}

func (s *Storage) UpdateNotification(_ context.Context, id string, fromTypes []models.NotificationType, p models.NotificationPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return storage.ErrNotificationNotFound
	}
	if len(fromTypes) > 0 && !slices.Contains(fromTypes, n.Type) {
		return storage.ErrNotificationChanged
	}
	p.Apply(&n)
	s.notifications[id] = n

	return nil
}

func (s *Storage) UpdateByBooking(_ context.Context, bookingID string, fromTypes []models.NotificationType, p models.NotificationPatch) (int64, error) {
	return s.updateWhere(func(n models.Notification) bool {
		if n.BookingID != bookingID {
			return false
		}
		return len(fromTypes) == 0 || slices.Contains(fromTypes, n.Type)
	}, p), nil
}

func (s *Storage) UpdateByDate(_ context.Context, labDate string, excludeType models.NotificationType, p models.NotificationPatch) (int64, error) {
	return s.updateWhere(func(n models.Notification) bool {
		return n.LabDate == labDate && n.Type != excludeType
	}, p), nil
}

// list returns matches newest first.
func (s *Storage) list(match func(models.Notification) bool) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []models.Notification
	for i := len(s.order) - 1; i >= 0; i-- {
		n, ok := s.notifications[s.order[i]]
		if !ok || !match(n) {
			continue
		}
		res = append(res, n)
	}

	return res
}

func (s *Storage) updateWhere(match func(models.Notification) bool, p models.NotificationPatch) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for id, n := range s.notifications {
		if !match(n) {
			continue
		}
		p.Apply(&n)
		s.notifications[id] = n
		updated++
	}

	return updated
}
