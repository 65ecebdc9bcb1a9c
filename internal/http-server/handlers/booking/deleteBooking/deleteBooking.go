package deleteBooking

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/logger/sl"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingDeleter
type BookingDeleter interface {
	Delete(ctx context.Context, id string) error
}

func New(log *slog.Logger, deleter BookingDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.deleteBooking.New"

		log := log.With(slog.String("op", op))

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

		if err := deleter.Delete(r.Context(), id); err != nil {
			log.Error("failed to delete booking", sl.Err(err))
			response.RenderError(w, r, err, "failed to delete booking")
			return
		}

		log.Info("booking deleted")

		render.JSON(w, r, response.OK())
	}
}
