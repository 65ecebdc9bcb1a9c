package runReminders

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/logger/sl"
)

type Response struct {
	response.Response
	Date         string `json:"date"`
	UpdatedCount int64  `json:"updated_count"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ReminderRunner
type ReminderRunner interface {
	RunReminderPass(ctx context.Context, today time.Time) (int64, error)
	Today() time.Time
}

// New runs the reminder pass for today, or for the day given as ?date=YYYY-MM-DD.
func New(log *slog.Logger, runner ReminderRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reminder.runReminders.New"

		log := log.With(slog.String("op", op))

		day := runner.Today()

		if v := r.URL.Query().Get("date"); v != "" {
			parsed, err := time.ParseInLocation(time.DateOnly, v, day.Location())
			if err != nil {
				log.Error("invalid date", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("date must be YYYY-MM-DD"))
				return
			}
			day = parsed
		}

		date := day.Format(time.DateOnly)
		log = log.With(slog.String("date", date))

		updated, err := runner.RunReminderPass(r.Context(), day)
		if err != nil {
			log.Error("reminder pass failed", sl.Err(err))
			response.RenderError(w, r, err, "failed to run reminders")
			return
		}

		log.Info("reminder pass finished", slog.Int64("updated_count", updated))

		render.JSON(w, r, Response{
			Response:     response.OK(),
			Date:         date,
			UpdatedCount: updated,
		})
	}
}
