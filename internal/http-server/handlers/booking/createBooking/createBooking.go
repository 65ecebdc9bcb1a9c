package createBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"labBooker/internal/http-server/middleware/mwcaller"
	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/apperror"
	"labBooker/internal/lib/email"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/models"
	"labBooker/internal/services/booking"
	"labBooker/internal/services/notification"
)

type Request struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description,omitempty"`
	StartTime   string   `json:"start_time" validate:"required"`
	EndTime     string   `json:"end_time" validate:"required"`
	Attendees   []string `json:"attendees" validate:"required,min=1"`
	Message     string   `json:"message,omitempty"`
}

type Response struct {
	response.Response
	Booking       models.Booking        `json:"booking"`
	Notifications []models.Notification `json:"notifications"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	Create(ctx context.Context, in booking.CreateInput) (models.Booking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=NotificationFanOuter
type NotificationFanOuter interface {
	FanOut(ctx context.Context, attendees []string, tmpl notification.Template) ([]models.Notification, error)
}

// New books the lab for the caller and sends a request notification to every
// attendee. The caller is recorded as the sender.
func New(log *slog.Logger, creator BookingCreator, fanOuter NotificationFanOuter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log := log.With(
			slog.String("op", op),
		)

		caller, ok := mwcaller.FromContext(r.Context())
		if !ok {
			log.Error("caller identity missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("caller identity is required"))

			return
		}

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.String("title", req.Title), slog.Int("attendees", len(req.Attendees)))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		if err = email.Validate(caller.Email); err != nil {
			log.Error("invalid caller email", sl.Err(err))
			response.RenderError(w, r, apperror.Validation("sender_email", apperror.CodeInvalid, "invalid caller email %q", caller.Email), "")

			return
		}

		b, err := creator.Create(r.Context(), booking.CreateInput{
			Title:       req.Title,
			Description: req.Description,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Attendees:   req.Attendees,
		})
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))
			response.RenderError(w, r, err, "failed to create booking")

			return
		}

		log = log.With(slog.String("booking_id", b.ID))

		ns, err := fanOuter.FanOut(r.Context(), b.Attendees, notification.TemplateFor(b, caller.Email, req.Message))
		if err != nil {
			log.Error("booking created but fan-out failed", sl.Err(err))
			response.RenderError(w, r, err, "booking created but attendees were not notified")

			return
		}

		log.Info("booking created", slog.Int("notifications", len(ns)))

		responseOK(w, r, b, ns)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, b models.Booking, ns []models.Notification) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Response:      response.OK(),
		Booking:       b,
		Notifications: ns,
	})
}
