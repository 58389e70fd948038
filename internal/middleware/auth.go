package middleware

import (
	"net/http"

	"github.com/southgate-leisure/feedback/internal/ctxkeys"
	"github.com/southgate-leisure/feedback/internal/service"
)

// SessionMiddleware resolves the session cookie and adds the staff account
// and session to the context when valid. Invalid or expired tokens clear the
// cookie and the request continues anonymously.
func SessionMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := service.SessionCookie(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			session, staff, err := authService.SessionStaff(token)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Refresh the cookie alongside the touched session
			authService.SetSessionCookie(w, session)

			ctx := ctxkeys.WithStaff(r.Context(), staff)
			ctx = ctxkeys.WithSession(ctx, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff guards the dashboard routes. Anonymous requests are redirected
// to the login page rather than erroring.
func RequireStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff := ctxkeys.Staff(r.Context())
		if staff == nil {
			http.Redirect(w, r, "/staff/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireGuest sends already logged-in staff to the dashboard.
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff := ctxkeys.Staff(r.Context())
		if staff != nil {
			http.Redirect(w, r, "/staff/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}
