package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/campusconnect-backend/pkg/ctxutil"
)

type sessionManager interface {
	Issue() (sessionID string, token string, err error)
	Verify(token string) (string, error)
	TTL() time.Duration
}

// SessionOptions configures the session cookie.
type SessionOptions struct {
	CookieName string
	Secure     bool
}

// Session returns middleware that resolves the anonymous viewer session
// from its cookie. A missing or invalid cookie gets a fresh session, which
// is set on the response. The session id is stored in the request context.
func Session(logger *slog.Logger, sessions sessionManager, opts SessionOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(opts.CookieName); err == nil {
				if id, err := sessions.Verify(c.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(ctxutil.WithSessionID(r.Context(), id)))
					return
				}
			}

			id, token, err := sessions.Issue()
			if err != nil {
				logger.ErrorContext(r.Context(), "issue session", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     opts.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(sessions.TTL().Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(ctxutil.WithSessionID(r.Context(), id)))
		})
	}
}
