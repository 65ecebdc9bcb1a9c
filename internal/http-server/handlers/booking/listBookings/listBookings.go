package listBookings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/models"
)

type Response struct {
	response.Response
	Bookings []models.Booking `json:"bookings"`
	Count    int              `json:"count"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingLister
type BookingLister interface {
	List(ctx context.Context, status models.BookingStatus) ([]models.Booking, int, error)
}

// New lists bookings, optionally filtered by the status query parameter.
func New(log *slog.Logger, lister BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.listBookings.New"

		status := models.BookingStatus(r.URL.Query().Get("status"))

		log := log.With(
			slog.String("op", op),
			slog.String("status", string(status)),
		)

		bookings, count, err := lister.List(r.Context(), status)
		if err != nil {
			log.Error("failed to list bookings", sl.Err(err))
			response.RenderError(w, r, err, "failed to list bookings")

			return
		}

		log.Info("bookings retrieved", slog.Int("count", count))

		responseOK(w, r, bookings, count)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, bookings []models.Booking, count int) {
	if bookings == nil {
		bookings = []models.Booking{}
	}

	render.JSON(w, r, Response{
		Response: response.OK(),
		Bookings: bookings,
		Count:    count,
	})
}
