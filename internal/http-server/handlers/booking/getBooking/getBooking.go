package getBooking

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/models"
)

type Response struct {
	response.Response
	Booking models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingGetter
type BookingGetter interface {
	Get(ctx context.Context, id string) (models.Booking, error)
}

func New(log *slog.Logger, getter BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getBooking.New"

		log := log.With(
			slog.String("op", op),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))

			return
		}

		if _, err := uuid.Parse(id); err != nil {
			log.Error("invalid booking id format", slog.String("id", id), sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid booking id format"))

			return
		}

		log = log.With(slog.String("booking_id", id))

		b, err := getter.Get(r.Context(), id)
		if err != nil {
			log.Error("failed to get booking", sl.Err(err))
			response.RenderError(w, r, err, "failed to get booking")

			return
		}

		log.Info("booking retrieved")

		responseOK(w, r, b)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, b models.Booking) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Booking:  b,
	})
}
