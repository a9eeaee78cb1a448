package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Phronesis2025/wcs-basketball-go/internal/api/apierr"
	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/auth"
)

type contextKey string

const (
	staffContextKey   contextKey = "staff"
	sessionContextKey contextKey = "session"
)

// Auth creates authentication middleware requiring a staff session
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			// Add session and staff account to context
			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, staffContextKey, &session.Staff)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetStaff returns the staff account from the context, or nil
func GetStaff(ctx context.Context) *model.StaffAccount {
	staff, _ := ctx.Value(staffContextKey).(*model.StaffAccount)
	return staff
}

// MustGetStaff returns the staff account from the context; it panics when
// called outside an Auth-wrapped handler
func MustGetStaff(ctx context.Context) *model.StaffAccount {
	staff := GetStaff(ctx)
	if staff == nil {
		panic("no staff account in context")
	}
	return staff
}

// GetSession returns the session from the context, or nil
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}
