package listBookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"labBooker/internal/http-server/handlers/booking/listBookings/mocks"
	"labBooker/internal/lib/apperror"
	"labBooker/internal/lib/logger/handlers/slogdiscard"
	"labBooker/internal/models"
)

func TestListBookingsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	pending := []models.Booking{
		{ID: "b1", Title: "A", StartTime: start, EndTime: start.Add(time.Hour), Status: models.BookingPending},
		{ID: "b2", Title: "B", StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour), Status: models.BookingPending},
	}

	testCases := []struct {
		name           string
		query          string
		mockSetup      func(m *mocks.BookingLister)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name:  "Filtered by status",
			query: "?status=pending",
			mockSetup: func(m *mocks.BookingLister) {
				m.On("List", mock.Anything, models.BookingPending).Return(pending, 2, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var resp Response
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, 2, resp.Count)
				require.Len(t, resp.Bookings, 2)
				assert.Equal(t, "b1", resp.Bookings[0].ID)
			},
		},
		{
			name: "Empty store",
			mockSetup: func(m *mocks.BookingLister) {
				m.On("List", mock.Anything, models.BookingStatus("")).Return(nil, 0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","bookings":[],"count":0}`,
		},
		{
			name:  "Unknown status",
			query: "?status=archived",
			mockSetup: func(m *mocks.BookingLister) {
				m.On("List", mock.Anything, models.BookingStatus("archived")).
					Return(nil, 0, apperror.Validation("status", apperror.CodeInvalid, "unknown booking status %q", "archived"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"unknown booking status \"archived\"","code":"invalid"}`,
		},
		{
			name: "Internal error",
			mockSetup: func(m *mocks.BookingLister) {
				m.On("List", mock.Anything, mock.Anything).Return(nil, 0, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to list bookings"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lister := mocks.NewBookingLister(t)
			tc.mockSetup(lister)

			router := chi.NewRouter()
			router.Get("/bookings", New(logger, lister))

			req, err := http.NewRequest(http.MethodGet, "/bookings"+tc.query, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else {
				tc.checkBody(t, rr.Body.Bytes())
			}
		})
	}
}
