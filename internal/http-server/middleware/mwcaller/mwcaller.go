// Package mwcaller reads the caller identity forwarded by the upstream gateway.
package mwcaller

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/render"

	"labBooker/internal/lib/api/response"
	"labBooker/internal/lib/email"
)

const (
	HeaderEmail = "X-User-Email"
	HeaderRole  = "X-User-Role"
)

const (
	RoleLecturer   = "lecturer"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
	RoleStudent    = "student"
)

// AuthorityRoles may confirm or cancel lab sessions, delete bookings and run reminders.
var AuthorityRoles = []string{RoleLecturer, RoleInstructor, RoleAdmin}

type Caller struct {
	Email string
	Role  string
}

type ctxKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func FromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(ctxKey{}).(Caller)
	return c, ok
}

// New stores the caller in the request context when the email header is present.
func New(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/caller"),
		)

		log.Info("caller middleware enabled")

		fn := func(w http.ResponseWriter, r *http.Request) {
			addr := email.Canonical(r.Header.Get(HeaderEmail))
			if addr == "" {
				next.ServeHTTP(w, r)
				return
			}

			c := Caller{
				Email: addr,
				Role:  strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderRole))),
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), c)))
		}

		return http.HandlerFunc(fn)
	}
}

// Require rejects requests without a caller.
func Require(next http.Handler) http.Handler {
	return RequireRole()(next)
}

// RequireRole rejects requests without a caller, or, when roles are given,
// whose role is not among them.
func RequireRole(roles ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			c, ok := FromContext(r.Context())
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("caller identity is required"))
				return
			}

			if len(roles) > 0 && !slices.Contains(roles, c.Role) {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("role "+strings.Join(roles, ", ")+" required"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
