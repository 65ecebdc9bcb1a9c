package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labBooker/internal/models"
)

func TestIsBusiness(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", Validation("start_time", CodeMissing, "start_time is required"), true},
		{"conflict", &ConflictError{Reason: "taken"}, true},
		{"not found", NotFound("booking", "42"), true},
		{"authorization", &AuthorizationError{Reason: "nope"}, true},
		{"state", State(StateAlreadyConfirmed, "already confirmed"), true},
		{"wrapped state", fmt.Errorf("op: %w", State(StateAlreadyCancelled, "cancelled")), true},
		{"infrastructure", errors.New("connection reset"), false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsBusiness(tc.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	conflict := &ConflictError{
		Reason:    "window is taken",
		Conflicts: []models.BookingSummary{{ID: "a"}, {ID: "b"}},
	}
	assert.Equal(t, "window is taken (2 conflicting booking(s))", conflict.Error())
	assert.Equal(t, "notification n-1 not found", NotFound("notification", "n-1").Error())

	var stateErr *StateError
	require.True(t, errors.As(fmt.Errorf("wrap: %w", State(StateIllegalTransition, "cannot go from %s to %s", "a", "b")), &stateErr))
	assert.Equal(t, StateIllegalTransition, stateErr.Code)
	assert.Equal(t, "cannot go from a to b", stateErr.Reason)
}
