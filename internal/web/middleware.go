package web

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/campuslf/lostfound/internal/auth"
	"github.com/campuslf/lostfound/internal/store"
)

type webContextKey string

const sessionKey webContextKey = "session"

const sessionCookie = "session"

// Session is the request-scoped view of the visitor's session.
type Session struct {
	Admin     bool
	ID        string
	ExpiresAt time.Time
}

// SessionMiddleware validates the session cookie, checks revocation, and
// stores the resulting Session in the request context. Missing, invalid or
// revoked sessions are anonymous.
func SessionMiddleware(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{}

			if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
				claims, err := auth.ValidateSession(secret, cookie.Value)
				switch {
				case err != nil:
					clearSessionCookie(w)
				case claims.ID != "":
					revoked, err := store.IsSessionRevoked(r.Context(), db, claims.ID)
					if err != nil {
						slog.Error("failed to check session revocation", "error", err)
						break
					}
					if revoked {
						clearSessionCookie(w)
						break
					}
					sess = &Session{Admin: claims.Admin, ID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}
				}
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin lets the request through only for admin sessions. Anyone else
// is sent to the login page and the handler is not run.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetSession(r.Context()).Admin {
			slog.Warn("admin access denied", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
			setFlash(w, flashError, "Admin access required.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession retrieves the session from context. It never returns nil.
func GetSession(ctx context.Context) *Session {
	if sess, ok := ctx.Value(sessionKey).(*Session); ok {
		return sess
	}
	return &Session{}
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionExpiry / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie clears the session cookie with consistent attributes.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
