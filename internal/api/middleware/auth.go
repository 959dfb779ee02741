package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	gorilla "github.com/gorilla/sessions"

	coresessions "Pressfeed/internal/core/sessions"
	"Pressfeed/internal/core/users"
)

// Context keys for storing request-scoped identity
type contextKey string

const (
	userKey      contextKey = "user"
	sessionIDKey contextKey = "session_id"
)

// SessionCookieName is the cookie carrying the signed session ID.
const SessionCookieName = "pressfeed_session"

// LoginPath is where unauthenticated browsers are sent, with the original
// path preserved in the next parameter.
const LoginPath = "/auth/login/"

// SessionAuth loads the acting user from the signed session cookie.
// The cookie only carries the opaque session ID; the session row and the
// user are looked up per request.
type SessionAuth struct {
	store    *gorilla.CookieStore
	sessions coresessions.Service
	users    users.Service
}

// NewSessionAuth creates session middleware backed by a signed cookie store
func NewSessionAuth(secret []byte, sessionService coresessions.Service, userService users.Service) *SessionAuth {
	store := gorilla.NewCookieStore(secret)
	store.Options = &gorilla.Options{
		Path:     "/",
		MaxAge:   int(coresessions.Lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionAuth{store: store, sessions: sessionService, users: userService}
}

// LoadUser resolves the session cookie to a user and injects it into the
// request context. Anonymous and invalid-session requests pass through
// without a user; nothing here ever blocks a request.
func (m *SessionAuth) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := m.store.Get(r, SessionCookieName)
		if err != nil {
			// Tampered or stale cookie; treat as anonymous
			next.ServeHTTP(w, r)
			return
		}

		sid, _ := cookie.Values["sid"].(string)
		if sid == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.sessions.Validate(r.Context(), sid)
		if err != nil {
			if !errors.Is(err, coresessions.ErrSessionNotFound) && !errors.Is(err, coresessions.ErrSessionExpired) {
				slog.Warn("session validation failed", "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetByID(r.Context(), session.UserID)
		if err != nil {
			slog.Warn("session user lookup failed", "user_id", session.UserID, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, sessionIDKey, session.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser redirects anonymous browsers to the login page, preserving
// the requested path in the next parameter. Must run after LoadUser.
func (m *SessionAuth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			loginURL := LoginPath + "?next=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, loginURL, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Issue writes the session cookie after a successful login
func (m *SessionAuth) Issue(w http.ResponseWriter, r *http.Request, sessionID string) error {
	cookie, _ := m.store.New(r, SessionCookieName)
	cookie.Values["sid"] = sessionID
	return cookie.Save(r, w)
}

// Clear expires the session cookie on logout
func (m *SessionAuth) Clear(w http.ResponseWriter, r *http.Request) error {
	cookie, _ := m.store.Get(r, SessionCookieName)
	cookie.Options.MaxAge = -1
	delete(cookie.Values, "sid")
	return cookie.Save(r, w)
}

// CurrentUser returns the acting user loaded by LoadUser, or nil for
// anonymous requests.
func CurrentUser(r *http.Request) *users.User {
	user, _ := r.Context().Value(userKey).(*users.User)
	return user
}

// CurrentSessionID returns the validated session ID for the request, if any
func CurrentSessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionIDKey).(string)
	return sid
}

// withUser is used by the token middleware to inject a user resolved from
// a bearer token.
func withUser(r *http.Request, user *users.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}
