package interceptors

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const sessionIDValue = "sid"

// NewCookieStore returns a signed cookie store whose cookies live as long as
// an idle session.
func NewCookieStore(secret []byte, ttl time.Duration) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// NewSessionMiddleware makes sure every request carries a session ID. The ID
// lives in a signed cookie; a missing or tampered cookie starts a new session.
// The cookie is rewritten on every request so its lifetime slides with use.
func NewSessionMiddleware(store sessions.Store, cookieName string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Get(r, cookieName)
			if err != nil {
				logger.WarnContext(r.Context(), "discarding unreadable session cookie", slog.Any("error", err))
			}

			id, _ := sess.Values[sessionIDValue].(string)
			if id == "" {
				id = uuid.NewString()
				sess.Values[sessionIDValue] = id
			}
			if err := sess.Save(r, w); err != nil {
				logger.ErrorContext(r.Context(), "failed to save session cookie", slog.Any("error", err))
				http.Error(w, "session unavailable", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}
