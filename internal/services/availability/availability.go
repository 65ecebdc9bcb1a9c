package availability

import (
	"context"
	"fmt"
	"log/slog"

	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/lib/timewindow"
	"labBooker/internal/models"
	"labBooker/internal/storage"
)

const (
	ReasonAvailable = "time slot is available"
	ReasonConflict  = "time slot conflicts with existing bookings"
)

type Result struct {
	Available bool                    `json:"available"`
	Reason    string                  `json:"reason"`
	Conflicts []models.BookingSummary `json:"conflicts"`
}

// Checker finds active bookings that collide with a window.
type Checker struct {
	log    *slog.Logger
	finder storage.OverlapFinder
}

func New(log *slog.Logger, finder storage.OverlapFinder) *Checker {
	return &Checker{log: log, finder: finder}
}

// With returns a Checker reading through finder, typically a repository bound
// to an open reservation.
func (c *Checker) With(finder storage.OverlapFinder) *Checker {
	return &Checker{log: c.log, finder: finder}
}

// Check validates presence, format and ordering of the raw pair before
// querying. Duration and past-time rules belong to booking creation, not to
// a read-only availability probe.
func (c *Checker) Check(ctx context.Context, start, end, excludeID string) (Result, error) {
	w, err := timewindow.Parse(start, end)
	if err != nil {
		return Result{}, err
	}

	return c.CheckWindow(ctx, w, excludeID)
}

func (c *Checker) CheckWindow(ctx context.Context, w timewindow.Window, excludeID string) (Result, error) {
	const op = "services.availability.CheckWindow"

	log := c.log.With(
		slog.String("op", op),
		slog.Time("start", w.Start),
		slog.Time("end", w.End),
	)

	overlapping, err := c.finder.FindOverlapping(ctx, w, excludeID, []models.BookingStatus{models.BookingCancelled})
	if err != nil {
		log.Error("failed to find overlapping bookings", sl.Err(err))
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(overlapping) == 0 {
		return Result{Available: true, Reason: ReasonAvailable, Conflicts: []models.BookingSummary{}}, nil
	}

	conflicts := make([]models.BookingSummary, 0, len(overlapping))
	for _, b := range overlapping {
		conflicts = append(conflicts, b.Summary())
	}

	log.Debug("window unavailable", slog.Int("conflicts", len(conflicts)))

	return Result{Available: false, Reason: ReasonConflict, Conflicts: conflicts}, nil
}
