package respondNotification

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"labBooker/internal/http-server/middleware/mwcaller"
	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/models"
)

type Response struct {
	response.Response
	Notification models.Notification `json:"notification"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Responder
type Responder interface {
	Accept(ctx context.Context, id string, callerEmail string) (models.Notification, error)
	Reject(ctx context.Context, id string, callerEmail string) (models.Notification, error)
	MarkRead(ctx context.Context, id string, callerEmail string) (models.Notification, error)
}

type respondFunc func(ctx context.Context, id, callerEmail string) (models.Notification, error)

func NewAccept(log *slog.Logger, responder Responder) http.HandlerFunc {
	return newRespond(log, "handlers.notification.respondNotification.NewAccept", "accept", responder.Accept)
}

func NewReject(log *slog.Logger, responder Responder) http.HandlerFunc {
	return newRespond(log, "handlers.notification.respondNotification.NewReject", "reject", responder.Reject)
}

func NewMarkRead(log *slog.Logger, responder Responder) http.HandlerFunc {
	return newRespond(log, "handlers.notification.respondNotification.NewMarkRead", "mark read", responder.MarkRead)
}

// newRespond serves the per-attendee actions. Only the notification's
// receiver may act on it; the service enforces that with 403.
func newRespond(log *slog.Logger, op, action string, respond respondFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(slog.String("op", op))

		caller, ok := mwcaller.FromContext(r.Context())
		if !ok {
			log.Error("caller identity missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("caller identity is required"))
			return
		}

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

		log = log.With(slog.String("notification_id", id), slog.String("caller", caller.Email))

		n, err := respond(r.Context(), id, caller.Email)
		if err != nil {
			log.Error("failed to "+action+" notification", sl.Err(err))
			response.RenderError(w, r, err, "failed to "+action+" notification")
			return
		}

		log.Info("notification updated", slog.String("type", string(n.Type)))

		render.JSON(w, r, Response{
			Response:     response.OK(),
			Notification: n,
		})
	}
}
