package timewindow

import (
	"strings"
	"time"

	"labBooker/internal/lib/apperror"
)

const (
	MinDuration = 30 * time.Minute
	MaxDuration = 8 * time.Hour
)

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps reports whether w and o share any instant, i.e.
// NOT(w.End <= o.Start OR w.Start >= o.End). Touching windows do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

// Parse checks presence, format and ordering of an ISO-8601 pair.
func Parse(start, end string) (Window, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)

	if start == "" {
		return Window{}, apperror.Validation("start_time", apperror.CodeMissing, "start time is required")
	}
	if end == "" {
		return Window{}, apperror.Validation("end_time", apperror.CodeMissing, "end time is required")
	}

	s, err := parseInstant(start)
	if err != nil {
		return Window{}, apperror.Validation("start_time", apperror.CodeInvalid, "invalid start time %q", start)
	}

	e, err := parseInstant(end)
	if err != nil {
		return Window{}, apperror.Validation("end_time", apperror.CodeInvalid, "invalid end time %q", end)
	}

	w := Window{Start: s, End: e}
	if !w.Start.Before(w.End) {
		return Window{}, apperror.Validation("end_time", apperror.CodeOrdering, "start time must be before end time")
	}

	return w, nil
}

// Validate parses the pair and enforces the booking rules relative to now.
func Validate(start, end string, now time.Time) (Window, error) {
	w, err := Parse(start, end)
	if err != nil {
		return Window{}, err
	}

	if err = w.Check(now); err != nil {
		return Window{}, err
	}

	return w, nil
}

// Check enforces the rules on an already parsed window.
func (w Window) Check(now time.Time) error {
	if !w.Start.Before(w.End) {
		return apperror.Validation("end_time", apperror.CodeOrdering, "start time must be before end time")
	}
	if w.Start.Before(now) {
		return apperror.Validation("start_time", apperror.CodeInPast, "cannot book a time in the past")
	}

	switch d := w.Duration(); {
	case d > MaxDuration:
		return apperror.Validation("end_time", apperror.CodeTooLong, "booking cannot exceed %s (got %s)", hours(MaxDuration), d)
	case d < MinDuration:
		return apperror.Validation("end_time", apperror.CodeTooShort, "booking must be at least %s (got %s)", MinDuration, d)
	}

	return nil
}

func parseInstant(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err == nil {
		return t, nil
	}

	// Clients occasionally send local datetimes without an offset.
	return time.Parse("2006-01-02T15:04:05", v)
}

func hours(d time.Duration) string {
	return strings.TrimSuffix(d.String(), "0m0s")
}
