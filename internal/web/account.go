package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"Pressfeed/internal/api/middleware"
	"Pressfeed/internal/core/users"
)

// SignupHandler handles GET and POST /auth/signup/. A successful signup
// logs the new user in immediately.
func (h *Handlers) SignupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, "signup.html", AuthFormData{Title: "Sign up", Viewer: middleware.CurrentUser(r)})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.userService.Register(r.Context(), users.RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		h.render(w, "signup.html", AuthFormData{
			Title:    "Sign up",
			Errors:   signupErrors(err),
			Username: username,
		})
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		h.serverError(w, "signup session", err)
		return
	}

	slog.Info("user registered", "username", user.Username)
	http.Redirect(w, r, "/", http.StatusFound)
}

// LoginHandler handles GET and POST /auth/login/. The next query/form
// parameter returns the browser to the page that required login.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, "login.html", AuthFormData{
			Title:  "Log in",
			Viewer: middleware.CurrentUser(r),
			Next:   r.URL.Query().Get("next"),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	next := r.PostFormValue("next")

	user, err := h.userService.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, users.ErrInvalidLogin) {
			h.serverError(w, "login", err)
			return
		}
		h.render(w, "login.html", AuthFormData{
			Title:    "Log in",
			Errors:   map[string]string{"form": "Invalid username or password."},
			Username: username,
			Next:     next,
		})
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		h.serverError(w, "login session", err)
		return
	}

	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

// LogoutHandler handles POST /auth/logout/.
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if sid := middleware.CurrentSessionID(r); sid != "" {
		if err := h.sessionSvc.End(r.Context(), sid); err != nil {
			slog.Warn("failed to end session", "error", err)
		}
	}
	if err := h.auth.Clear(w, r); err != nil {
		slog.Warn("failed to clear session cookie", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, userID int64) error {
	session, err := h.sessionSvc.Start(r.Context(), userID)
	if err != nil {
		return err
	}
	return h.auth.Issue(w, r, session.ID)
}

// safeNext only honors local redirect targets; anything else goes home.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

func signupErrors(err error) map[string]string {
	var invalidUsername *users.InvalidUsernameError
	var weakPassword *users.WeakPasswordError

	switch {
	case errors.Is(err, users.ErrUsernameTaken):
		return map[string]string{"username": "That username is already taken."}
	case errors.As(err, &invalidUsername):
		return map[string]string{"username": invalidUsername.Reason}
	case errors.As(err, &weakPassword):
		return map[string]string{"password": weakPassword.Reason}
	default:
		return map[string]string{"form": "Could not create the account."}
	}
}
