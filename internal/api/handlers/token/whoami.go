package token

import (
	"net/http"

	"Pressfeed/internal/api/middleware"
)

type whoAmIResponse struct {
	Username string `json:"username"`
	UserID   int64  `json:"userId"`
}

// HandleWhoAmI handles GET /api/me, reporting the authenticated caller.
// The auth middleware guarantees a user is present.
func (h *Handler) HandleWhoAmI(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "authentication required")
		return
	}

	writeJSON(w, http.StatusOK, whoAmIResponse{Username: user.Username, UserID: user.ID})
}
