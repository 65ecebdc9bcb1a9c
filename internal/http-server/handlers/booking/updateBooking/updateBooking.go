package updateBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/models"
	"labBooker/internal/services/booking"
)

// Request is a partial update; omitted fields are left as they are.
type Request struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	StartTime   *string   `json:"start_time,omitempty"`
	EndTime     *string   `json:"end_time,omitempty"`
	Attendees   *[]string `json:"attendees,omitempty" validate:"omitempty,min=1"`
}

func (req Request) empty() bool {
	return req.Title == nil && req.Description == nil && req.StartTime == nil && req.EndTime == nil && req.Attendees == nil
}

type Response struct {
	response.Response
	Booking models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingUpdater
type BookingUpdater interface {
	Update(ctx context.Context, id string, in booking.UpdateInput) (models.Booking, error)
}

func New(log *slog.Logger, updater BookingUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.updateBooking.New"

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

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		if req.empty() {
			log.Error("empty update")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("nothing to update"))

			return
		}

		b, err := updater.Update(r.Context(), id, booking.UpdateInput{
			Title:       req.Title,
			Description: req.Description,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Attendees:   req.Attendees,
		})
		if err != nil {
			log.Error("failed to update booking", sl.Err(err))
			response.RenderError(w, r, err, "failed to update booking")

			return
		}

		log.Info("booking updated")

		responseOK(w, r, b)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, b models.Booking) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Booking:  b,
	})
}
