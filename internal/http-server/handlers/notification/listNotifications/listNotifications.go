package listNotifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"labBooker/internal/http-server/middleware/mwcaller"
	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/logger/sl"
	"labBooker/internal/models"
)

type Response struct {
	response.Response
	Notifications []models.Notification `json:"notifications"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=NotificationLister
type NotificationLister interface {
	Received(ctx context.Context, receiver string, f models.NotificationFilter) ([]models.Notification, error)
	Sent(ctx context.Context, sender string, f models.NotificationFilter) ([]models.Notification, error)
}

type listFunc func(ctx context.Context, email string, f models.NotificationFilter) ([]models.Notification, error)

// NewReceived lists the caller's inbox.
func NewReceived(log *slog.Logger, lister NotificationLister) http.HandlerFunc {
	return newList(log, "handlers.notification.listNotifications.NewReceived", lister.Received)
}

// NewSent lists notifications the caller sent.
func NewSent(log *slog.Logger, lister NotificationLister) http.HandlerFunc {
	return newList(log, "handlers.notification.listNotifications.NewSent", lister.Sent)
}

func newList(log *slog.Logger, op string, list listFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(slog.String("op", op))

		caller, ok := mwcaller.FromContext(r.Context())
		if !ok {
			log.Error("caller identity missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("caller identity is required"))
			return
		}

		f, err := parseFilter(r)
		if err != nil {
			log.Error("invalid filter", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		ns, err := list(r.Context(), caller.Email, f)
		if err != nil {
			log.Error("failed to list notifications", sl.Err(err))
			response.RenderError(w, r, err, "failed to list notifications")
			return
		}

		log.Info("notifications retrieved", slog.Int("count", len(ns)))

		responseOK(w, r, ns)
	}
}

func parseFilter(r *http.Request) (models.NotificationFilter, error) {
	var f models.NotificationFilter

	q := r.URL.Query()

	if v := q.Get("type"); v != "" {
		typ := models.NotificationType(v)
		if !typ.IsValid() {
			return f, fmt.Errorf("unknown notification type %q", v)
		}
		f.Type = &typ
	}

	if v := q.Get("is_read"); v != "" {
		read, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("is_read must be true or false")
		}
		f.IsRead = &read
	}

	return f, nil
}

func responseOK(w http.ResponseWriter, r *http.Request, ns []models.Notification) {
	if ns == nil {
		ns = []models.Notification{}
	}

	render.JSON(w, r, Response{
		Response:      response.OK(),
		Notifications: ns,
	})
}
