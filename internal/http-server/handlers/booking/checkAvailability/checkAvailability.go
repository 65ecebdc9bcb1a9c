package checkAvailability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/models"
	"labBooker/internal/services/availability"
)

type Request struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	ExcludeID string `json:"exclude_id,omitempty"`
}

type Response struct {
	response.Response
	Available bool                    `json:"available"`
	Reason    string                  `json:"reason"`
	Conflicts []models.BookingSummary `json:"conflicts"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AvailabilityChecker
type AvailabilityChecker interface {
	Check(ctx context.Context, start string, end string, excludeID string) (availability.Result, error)
}

func New(log *slog.Logger, checker AvailabilityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.checkAvailability.New"

		log := log.With(
			slog.String("op", op),
		)

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

		res, err := checker.Check(r.Context(), req.StartTime, req.EndTime, req.ExcludeID)
		if err != nil {
			log.Error("failed to check availability", sl.Err(err))
			response.RenderError(w, r, err, "failed to check availability")

			return
		}

		log.Info("availability checked", slog.Bool("available", res.Available), slog.Int("conflicts", len(res.Conflicts)))

		responseOK(w, r, res)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, res availability.Result) {
	conflicts := res.Conflicts
	if conflicts == nil {
		conflicts = []models.BookingSummary{}
	}

	render.JSON(w, r, Response{
		Response:  response.OK(),
		Available: res.Available,
		Reason:    res.Reason,
		Conflicts: conflicts,
	})
}
