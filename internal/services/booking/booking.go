package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"labBooker/internal/lib/apperror"
	"labBooker/internal/lib/email"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/lib/metrics"
	"labBooker/internal/lib/timewindow"
	"labBooker/internal/models"
	"labBooker/internal/services/availability"
	"labBooker/internal/storage"
)

// Manager owns the booking state machine. Every mutation runs inside the
// store's ReserveWindow so overlap checks and the writes they gate are atomic.
type Manager struct {
	log     *slog.Logger
	store   storage.BookingStore
	checker *availability.Checker
	now     func() time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func New(log *slog.Logger, store storage.BookingStore, checker *availability.Checker, opts ...Option) *Manager {
	m := &Manager{
		log:     log,
		store:   store,
		checker: checker,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

type CreateInput struct {
	Title       string
	Description string
	StartTime   string
	EndTime     string
	Attendees   []string
}

// UpdateInput is a partial update; nil fields keep their current value.
type UpdateInput struct {
	Title       *string
	Description *string
	StartTime   *string
	EndTime     *string
	Attendees   *[]string
}

func (in UpdateInput) changesWindow() bool {
	return in.StartTime != nil || in.EndTime != nil
}

func (m *Manager) Create(ctx context.Context, in CreateInput) (models.Booking, error) {
	const op = "services.booking.Create"

	log := m.log.With(slog.String("op", op))

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Booking{}, apperror.Validation("title", apperror.CodeMissing, "title is required")
	}

	now := m.now()

	w, err := timewindow.Validate(in.StartTime, in.EndTime, now)
	if err != nil {
		return models.Booking{}, err
	}

	attendees, err := email.NormalizeList("attendees", in.Attendees)
	if err != nil {
		return models.Booking{}, err
	}

	b := models.Booking{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		StartTime:   w.Start,
		EndTime:     w.End,
		Attendees:   attendees,
		Status:      models.BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = m.store.ReserveWindow(ctx, func(ctx context.Context, repo storage.BookingRepository) error {
		if err := m.ensureAvailable(ctx, repo, w, "", "create"); err != nil {
			return err
		}

		return repo.CreateBooking(ctx, b)
	})
	if err != nil {
		return models.Booking{}, m.fail(log, op, err)
	}

	metrics.BookingsCreated.Inc()
	log.Info("booking created", slog.String("id", b.ID), slog.Int("attendees", len(attendees)))

	return b, nil
}

func (m *Manager) Update(ctx context.Context, id string, in UpdateInput) (models.Booking, error) {
	const op = "services.booking.Update"

	log := m.log.With(slog.String("op", op), slog.String("id", id))

	var updated models.Booking

	err := m.store.ReserveWindow(ctx, func(ctx context.Context, repo storage.BookingRepository) error {
		b, err := m.load(ctx, repo, id)
		if err != nil {
			return err
		}

		if b.Status == models.BookingCancelled {
			return apperror.State(apperror.StateBookingCancelled, "booking %s is cancelled and can no longer be changed", id)
		}

		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return apperror.Validation("title", apperror.CodeMissing, "title cannot be empty")
			}
			b.Title = title
		}
		if in.Description != nil {
			b.Description = strings.TrimSpace(*in.Description)
		}
		if in.Attendees != nil {
			attendees, err := email.NormalizeList("attendees", *in.Attendees)
			if err != nil {
				return err
			}
			b.Attendees = attendees
		}

		now := m.now()

		if in.changesWindow() {
			start, end := b.StartTime.Format(time.RFC3339Nano), b.EndTime.Format(time.RFC3339Nano)
			if in.StartTime != nil {
				start = *in.StartTime
			}
			if in.EndTime != nil {
				end = *in.EndTime
			}

			w, err := timewindow.Validate(start, end, now)
			if err != nil {
				return err
			}

			if !w.Start.Equal(b.StartTime) || !w.End.Equal(b.EndTime) {
				if err = m.ensureAvailable(ctx, repo, w, b.ID, "update"); err != nil {
					return err
				}
			}

			b.StartTime, b.EndTime = w.Start, w.End
		}

		b.UpdatedAt = now
		if err = repo.UpdateBooking(ctx, b); err != nil {
			return err
		}

		updated = b

		return nil
	})
	if err != nil {
		return models.Booking{}, m.fail(log, op, err)
	}

	log.Info("booking updated")

	return updated, nil
}

// Confirm re-checks availability before flipping the status so a booking
// created between this one's creation and its confirmation cannot end up
// double-booked.
func (m *Manager) Confirm(ctx context.Context, id string) (models.Booking, error) {
	const op = "services.booking.Confirm"

	log := m.log.With(slog.String("op", op), slog.String("id", id))

	b, err := m.transition(ctx, id, models.BookingConfirmed, func(ctx context.Context, repo storage.BookingRepository, b models.Booking) error {
		switch b.Status {
		case models.BookingCancelled:
			return apperror.State(apperror.StateBookingCancelled, "booking %s is cancelled and cannot be confirmed", id)
		case models.BookingConfirmed:
			return apperror.State(apperror.StateAlreadyConfirmed, "booking %s is already confirmed", id)
		}

		return m.ensureAvailable(ctx, repo, timewindow.Window{Start: b.StartTime, End: b.EndTime}, b.ID, "confirm")
	})
	if err != nil {
		return models.Booking{}, m.fail(log, op, err)
	}

	log.Info("booking confirmed")

	return b, nil
}

// Cancel is unconditional apart from the terminal check; freeing a window
// never needs an availability check.
func (m *Manager) Cancel(ctx context.Context, id string) (models.Booking, error) {
	const op = "services.booking.Cancel"

	log := m.log.With(slog.String("op", op), slog.String("id", id))

	b, err := m.transition(ctx, id, models.BookingCancelled, func(_ context.Context, _ storage.BookingRepository, b models.Booking) error {
		if b.Status == models.BookingCancelled {
			return apperror.State(apperror.StateAlreadyCancelled, "booking %s is already cancelled", id)
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, m.fail(log, op, err)
	}

	log.Info("booking cancelled")

	return b, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	const op = "services.booking.Delete"

	log := m.log.With(slog.String("op", op), slog.String("id", id))

	err := m.store.ReserveWindow(ctx, func(ctx context.Context, repo storage.BookingRepository) error {
		err := repo.DeleteBooking(ctx, id)
		if errors.Is(err, storage.ErrBookingNotFound) {
			return apperror.NotFound("booking", id)
		}
		return err
	})
	if err != nil {
		return m.fail(log, op, err)
	}

	log.Info("booking deleted")

	return nil
}

func (m *Manager) Get(ctx context.Context, id string) (models.Booking, error) {
	const op = "services.booking.Get"

	b, err := m.load(ctx, m.store, id)
	if err != nil {
		return models.Booking{}, m.fail(m.log.With(slog.String("op", op)), op, err)
	}

	return b, nil
}

// List returns bookings with the given status, or all bookings when status is empty.
func (m *Manager) List(ctx context.Context, status models.BookingStatus) ([]models.Booking, int, error) {
	const op = "services.booking.List"

	log := m.log.With(slog.String("op", op))

	if status != "" && !status.IsValid() {
		return nil, 0, apperror.Validation("status", apperror.CodeInvalid, "unknown booking status %q", status)
	}

	bookings, err := m.store.ListBookingsByStatus(ctx, status)
	if err != nil {
		return nil, 0, m.fail(log, op, err)
	}

	total, err := m.store.CountBookings(ctx, status)
	if err != nil {
		return nil, 0, m.fail(log, op, err)
	}

	return bookings, total, nil
}

func (m *Manager) transition(
	ctx context.Context,
	id string,
	to models.BookingStatus,
	guard func(ctx context.Context, repo storage.BookingRepository, b models.Booking) error,
) (models.Booking, error) {
	var res models.Booking

	err := m.store.ReserveWindow(ctx, func(ctx context.Context, repo storage.BookingRepository) error {
		b, err := m.load(ctx, repo, id)
		if err != nil {
			return err
		}

		if err = guard(ctx, repo, b); err != nil {
			return err
		}

		if !b.Status.CanTransitionTo(to) {
			return apperror.State(apperror.StateIllegalTransition, "booking %s cannot go from %s to %s", id, b.Status, to)
		}

		now := m.now()
		if err = repo.UpdateBookingStatus(ctx, id, to, now); err != nil {
			return err
		}

		b.Status, b.UpdatedAt = to, now
		res = b

		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	metrics.BookingTransitions.WithLabelValues(string(to)).Inc()

	return res, nil
}

func (m *Manager) ensureAvailable(ctx context.Context, repo storage.BookingRepository, w timewindow.Window, excludeID, operation string) error {
	res, err := m.checker.With(repo).CheckWindow(ctx, w, excludeID)
	if err != nil {
		return err
	}

	if !res.Available {
		metrics.BookingConflicts.WithLabelValues(operation).Inc()
		return &apperror.ConflictError{Reason: res.Reason, Conflicts: res.Conflicts}
	}

	return nil
}

func (m *Manager) load(ctx context.Context, repo storage.BookingRepository, id string) (models.Booking, error) {
	b, err := repo.GetBooking(ctx, id)
	if errors.Is(err, storage.ErrBookingNotFound) {
		return models.Booking{}, apperror.NotFound("booking", id)
	}

	return b, err
}

// fail logs and returns err. Business errors are returned as-is; faults are
// wrapped with op.
func (m *Manager) fail(log *slog.Logger, op string, err error) error {
	if apperror.IsBusiness(err) {
		log.Info("booking request rejected", slog.String("reason", err.Error()))
		return err
	}

	log.Error("booking operation failed", sl.Err(err))

	return fmt.Errorf("%s: %w", op, err)
}
