package mwcaller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"labBooker/internal/lib/logger/handlers/slogdiscard"
)

func echoCaller(w http.ResponseWriter, r *http.Request) {
	c, ok := FromContext(r.Context())
	if !ok {
		_, _ = w.Write([]byte("anonymous"))
		return
	}
	_, _ = w.Write([]byte(c.Email + "|" + c.Role))
}

func TestCallerMiddleware(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		email          string
		role           string
		middleware     func(http.Handler) http.Handler
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Anonymous passes through",
			middleware:     func(h http.Handler) http.Handler { return h },
			expectedStatus: http.StatusOK,
			expectedBody:   "anonymous",
		},
		{
			name:           "Email is canonicalised",
			email:          "  Lecturer@E.com ",
			role:           "Lecturer",
			middleware:     func(h http.Handler) http.Handler { return h },
			expectedStatus: http.StatusOK,
			expectedBody:   "lecturer@e.com|lecturer",
		},
		{
			name:           "Require without caller",
			middleware:     Require,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"caller identity is required"}`,
		},
		{
			name:           "Require with caller",
			email:          "x@e.com",
			middleware:     Require,
			expectedStatus: http.StatusOK,
			expectedBody:   "x@e.com|",
		},
		{
			name:           "Student lacks authority",
			email:          "x@e.com",
			role:           RoleStudent,
			middleware:     RequireRole(AuthorityRoles...),
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"role lecturer, instructor, admin required"}`,
		},
		{
			name:           "Admin has authority",
			email:          "boss@e.com",
			role:           RoleAdmin,
			middleware:     RequireRole(AuthorityRoles...),
			expectedStatus: http.StatusOK,
			expectedBody:   "boss@e.com|admin",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			router.Use(New(slogdiscard.NewDiscardLogger()))
			router.With(tc.middleware).Get("/", echoCaller)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.email != "" {
				req.Header.Set(HeaderEmail, tc.email)
			}
			if tc.role != "" {
				req.Header.Set(HeaderRole, tc.role)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if rr.Code == http.StatusOK {
				assert.Equal(t, tc.expectedBody, rr.Body.String())
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}
