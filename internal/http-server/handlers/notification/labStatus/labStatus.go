package labStatus

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
	"labBooker/internal/services/notification"
)

type Response struct {
	response.Response
	Notification models.Notification `json:"notification"`
	UpdatedCount int64               `json:"updated_count"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=LabPropagator
type LabPropagator interface {
	ConfirmLab(ctx context.Context, notificationID string) (notification.LabUpdate, error)
	CancelLab(ctx context.Context, notificationID string) (notification.LabUpdate, error)
}

type propagateFunc func(ctx context.Context, notificationID string) (notification.LabUpdate, error)

// NewConfirm marks the whole session as going ahead for every attendee.
func NewConfirm(log *slog.Logger, propagator LabPropagator) http.HandlerFunc {
	return newPropagate(log, "handlers.notification.labStatus.NewConfirm", "confirm", propagator.ConfirmLab)
}

// NewCancel calls the session off for every attendee.
func NewCancel(log *slog.Logger, propagator LabPropagator) http.HandlerFunc {
	return newPropagate(log, "handlers.notification.labStatus.NewCancel", "cancel", propagator.CancelLab)
}

func newPropagate(log *slog.Logger, op, action string, propagate propagateFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("notification id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("notification id is required"))
			return
		}

		if _, err := uuid.Parse(id); err != nil {
			log.Error("invalid notification id format", slog.String("id", id), sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid notification id format"))
			return
		}

		log = log.With(slog.String("notification_id", id))

		res, err := propagate(r.Context(), id)
		if err != nil {
			log.Error("failed to "+action+" lab session", sl.Err(err))
			response.RenderError(w, r, err, "failed to "+action+" lab session")
			return
		}

		log.Info("lab session updated", slog.Int64("updated_count", res.UpdatedCount))

		render.JSON(w, r, Response{
			Response:     response.OK(),
			Notification: res.Notification,
			UpdatedCount: res.UpdatedCount,
		})
	}
}
