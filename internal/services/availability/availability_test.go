package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labBooker/internal/lib/apperror"
	"labBooker/internal/lib/logger/handlers/slogdiscard"
	"labBooker/internal/lib/timewindow"
	"labBooker/internal/models"
	"labBooker/internal/storage/memory"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func seed(t *testing.T, store *memory.Storage, id string, status models.BookingStatus, start, end time.Time) {
	t.Helper()

	require.NoError(t, store.CreateBooking(context.Background(), models.Booking{
		ID:        id,
		Title:     "Lab " + id,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}))
}

func TestCheckScenarios(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		seedStatus    models.BookingStatus
		start, end    string
		exclude       string
		wantAvailable bool
		wantConflicts int
	}{
		{
			name:          "confirmed booking blocks partial overlap",
			seedStatus:    models.BookingConfirmed,
			start:         "2026-03-02T10:30:00Z",
			end:           "2026-03-02T11:30:00Z",
			wantAvailable: false,
			wantConflicts: 1,
		},
		{
			name:          "pending booking blocks identical window",
			seedStatus:    models.BookingPending,
			start:         "2026-03-02T10:00:00Z",
			end:           "2026-03-02T11:00:00Z",
			wantAvailable: false,
			wantConflicts: 1,
		},
		{
			name:          "cancelled booking never blocks",
			seedStatus:    models.BookingCancelled,
			start:         "2026-03-02T10:00:00Z",
			end:           "2026-03-02T11:00:00Z",
			wantAvailable: true,
		},
		{
			name:          "self is excluded",
			seedStatus:    models.BookingConfirmed,
			start:         "2026-03-02T10:00:00Z",
			end:           "2026-03-02T11:00:00Z",
			exclude:       "a",
			wantAvailable: true,
		},
		{
			name:          "adjacent window is free",
			seedStatus:    models.BookingConfirmed,
			start:         "2026-03-02T11:00:00Z",
			end:           "2026-03-02T12:00:00Z",
			wantAvailable: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := memory.New(slogdiscard.NewDiscardLogger())
			seed(t, store, "a", tc.seedStatus, at(10, 0), at(11, 0))

			checker := New(slogdiscard.NewDiscardLogger(), store)

			res, err := checker.Check(context.Background(), tc.start, tc.end, tc.exclude)
			require.NoError(t, err)

			assert.Equal(t, tc.wantAvailable, res.Available)
			assert.Len(t, res.Conflicts, tc.wantConflicts)
			if !tc.wantAvailable {
				assert.Equal(t, ReasonConflict, res.Reason)
				assert.Equal(t, "a", res.Conflicts[0].ID)
				assert.Equal(t, tc.seedStatus, res.Conflicts[0].Status)
			}
		})
	}
}

func TestCheckValidatesBeforeQuerying(t *testing.T) {
	t.Parallel()

	checker := New(slogdiscard.NewDiscardLogger(), failingFinder{})

	_, err := checker.Check(context.Background(), "2026-03-02T11:00:00Z", "2026-03-02T10:00:00Z", "")

	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, apperror.CodeOrdering, vErr.Code)
}

func TestCheckPropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	checker := New(slogdiscard.NewDiscardLogger(), failingFinder{})

	_, err := checker.Check(context.Background(), "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z", "")
	require.ErrorIs(t, err, errStore)
	assert.False(t, apperror.IsBusiness(err))
}

func TestCheckListsEveryConflict(t *testing.T) {
	t.Parallel()

	store := memory.New(slogdiscard.NewDiscardLogger())
	seed(t, store, "early", models.BookingConfirmed, at(9, 0), at(10, 30))
	seed(t, store, "late", models.BookingPending, at(11, 30), at(13, 0))
	seed(t, store, "gone", models.BookingCancelled, at(10, 0), at(12, 0))

	res, err := New(slogdiscard.NewDiscardLogger(), store).
		CheckWindow(context.Background(), timewindow.Window{Start: at(10, 0), End: at(12, 0)}, "")
	require.NoError(t, err)

	require.False(t, res.Available)
	require.Len(t, res.Conflicts, 2)
	assert.Equal(t, "early", res.Conflicts[0].ID)
	assert.Equal(t, "late", res.Conflicts[1].ID)
}

var errStore = errors.New("connection refused")

type failingFinder struct{}

func (failingFinder) FindOverlapping(context.Context, timewindow.Window, string, []models.BookingStatus) ([]models.Booking, error) {
	return nil, errStore
}
