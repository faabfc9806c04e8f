package handlers

import (
	"net/http"
	"strings"

	"ticketdesk/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

// Login handles POST /api/admin/login and returns a bearer token.
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	req := loginRequest{}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}

	token, admin, err := h.authService.Login(e.Request.Context(), strings.TrimSpace(req.Email), req.Secret)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"token": token,
		"admin": admin,
	})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(e *core.RequestEvent) error {
	if err := h.authService.Logout(e.Request.Context(), bearerToken(e)); err != nil {
		return apiError(err)
	}
	return e.NoContent(http.StatusNoContent)
}

// RequireAdmin wraps admin-only handlers with bearer token validation.
func (h *AuthHandler) RequireAdmin(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := bearerToken(e)
		if _, err := h.authService.Validate(e.Request.Context(), token); err != nil {
			return apiError(err)
		}
		return next(e)
	}
}

func bearerToken(e *core.RequestEvent) string {
	auth := e.Request.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
