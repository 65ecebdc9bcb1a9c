package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusTransitions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingConfirmed, false},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCancelled, BookingCancelled, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, BookingPending.IsValid())
	assert.False(t, BookingStatus("archived").IsValid())
}

func TestNotificationTypeTransitions(t *testing.T) {
	t.Parallel()

	for _, next := range AllNotificationTypes() {
		assert.False(t, NotificationCancellation.CanTransitionTo(next), "cancellation must be terminal, got -> %s", next)
	}

	for _, from := range AllNotificationTypes() {
		if from == NotificationCancellation {
			continue
		}
		assert.True(t, from.CanTransitionTo(NotificationCancellation), "%s must be cancellable", from)
		assert.True(t, from.CanTransitionTo(NotificationReminder), "%s must accept a reminder", from)
	}

	assert.True(t, NotificationRequest.CanTransitionTo(NotificationBookingConfirmation))
	assert.True(t, NotificationRequest.CanTransitionTo(NotificationRejected))
	assert.False(t, NotificationBookingConfirmation.CanTransitionTo(NotificationBookingConfirmation))
	assert.False(t, NotificationRejected.CanTransitionTo(NotificationRejected))

	// an attendee may still answer once the lab is confirmed or reminded
	for _, from := range []NotificationType{NotificationConfirmed, NotificationReminder} {
		assert.True(t, from.CanTransitionTo(NotificationBookingConfirmation), "%s -> booking_confirmation", from)
		assert.True(t, from.CanTransitionTo(NotificationRejected), "%s -> rejected", from)
	}
	assert.False(t, NotificationType("bogus").IsValid())
}

func TestSourcesOf(t *testing.T) {
	t.Parallel()

	sources := SourcesOf(NotificationReminder)
	assert.Len(t, sources, 5)
	assert.NotContains(t, sources, NotificationCancellation)

	sources = SourcesOf(NotificationBookingConfirmation)
	assert.ElementsMatch(t, []NotificationType{
		NotificationRequest,
		NotificationConfirmed,
		NotificationRejected,
		NotificationReminder,
	}, sources)
}

func TestNotificationPatchAndFilter(t *testing.T) {
	t.Parallel()

	n := Notification{Type: NotificationRequest, IsLabWillGoingOn: true}

	typ := NotificationCancellation
	off := false
	NotificationPatch{Type: &typ, IsLabWillGoingOn: &off}.Apply(&n)

	require.Equal(t, NotificationCancellation, n.Type)
	assert.False(t, n.IsLabWillGoingOn)
	assert.False(t, n.IsRead)

	assert.True(t, NotificationFilter{}.Matches(n))
	assert.True(t, NotificationFilter{Type: &typ}.Matches(n))

	unread := false
	assert.True(t, NotificationFilter{IsRead: &unread}.Matches(n))

	other := NotificationRequest
	assert.False(t, NotificationFilter{Type: &other}.Matches(n))
}
