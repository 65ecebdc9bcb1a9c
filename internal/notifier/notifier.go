package notifier

import (
	"context"
	"errors"

	"labBooker/internal/models"
)

// Notifier delivers a stored notification to an outside channel.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

type noop struct{}

func (noop) Notify(context.Context, models.Notification) error { return nil }

// Noop returns a Notifier that drops everything.
func Noop() Notifier {
	return noop{}
}

type multi []Notifier

func (m multi) Notify(ctx context.Context, n models.Notification) error {
	var errs []error

	for _, nt := range m {
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Multi fans a notification out to every channel. All channels are tried even
// when one fails; the failures are joined.
func Multi(notifiers ...Notifier) Notifier {
	var m multi

	for _, n := range notifiers {
		if n == nil {
			continue
		}
		if _, ok := n.(noop); ok {
			continue
		}
		m = append(m, n)
	}

	switch len(m) {
	case 0:
		return Noop()
	case 1:
		return m[0]
	}

	return m
}
