package token

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Pressfeed/internal/api/middleware"
	"Pressfeed/internal/core/users"
)

// Handler mints API bearer tokens from username+password credentials
type Handler struct {
	tokens      *middleware.APITokens
	userService users.Service
}

// NewHandler creates a new token handler
func NewHandler(tokens *middleware.APITokens, userService users.Service) *Handler {
	return &Handler{tokens: tokens, userService: userService}
}

type mintRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type mintResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleMint handles POST /api/token
func (h *Handler) HandleMint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "username and password are required")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, users.ErrInvalidLogin) {
		writeError(w, http.StatusUnauthorized, "InvalidCredentials", "invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to authenticate for token", "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to issue token")
		return
	}

	signed, err := h.tokens.Mint(user.Username)
	if err != nil {
		slog.Error("failed to mint token", "username", user.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, mintResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(middleware.TokenLifetime.Seconds()),
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
