package auth

import (
	"net/http"

	"github.com/ayush/goalsetter/internal/apperr"
	"github.com/ayush/goalsetter/internal/models"
	"github.com/ayush/goalsetter/internal/render"
)

// Handler holds user-related HTTP handlers.
type Handler struct {
	gateway *Gateway
}

func NewHandler(gateway *Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	user, token, err := h.gateway.Register(r.Context(), req)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    user.Identity(),
		"token":   token,
	})
}

// Login authenticates a user and returns a new token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	token, err := h.gateway.Login(r.Context(), req)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}

// Logout revokes the bearer token of the current request.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gateway.Logout(r.Context(), BearerToken(r)); err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := IdentityFrom(r.Context())
	if !ok {
		render.Error(w, r, apperr.Unauthenticated(msgNotAuthorized))
		return
	}

	user, err := h.gateway.Profile(r.Context(), caller)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, user.Identity())
}
