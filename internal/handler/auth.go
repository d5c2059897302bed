package handler

import (
	"log/slog"
	"net/http"

	"github.com/lonelyhost/panel/internal/auth"
	"github.com/lonelyhost/panel/internal/domain"
	"github.com/lonelyhost/panel/internal/store"
)

// AuthHandler mints operator tokens. Tokens are issued on login but no other
// route requires one; enforcement is intentionally absent.
type AuthHandler struct {
	store  *store.Store
	jwt    *auth.JWTManager
	logger *slog.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(st *store.Store, jwt *auth.JWTManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{store: st, jwt: jwt, logger: logger}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		RespondError(w, domain.ErrValidation("username and password are required"))
		return
	}

	var user domain.User
	found := false
	for _, u := range h.store.Users.List() {
		if u.Username == req.Username {
			user, found = u, true
			break
		}
	}
	if !found || !auth.CheckPassword(user.PasswordHash, req.Password) {
		RespondError(w, domain.ErrUnauthorized("invalid credentials"))
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		RespondError(w, domain.ErrInternal("failed to generate token", err))
		return
	}

	h.logger.Info("operator logged in", "user_id", user.ID)
	RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}
