package api

import (
	"net/http"

	"church-platform/internal/domain"
)

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type updateProfilePayload struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type verifyTokenPayload struct {
	Token string `json:"token"`
}

// sessionResponse is returned by register and login.
type sessionResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	user, token, err := h.auth.Register(r.Context(), domain.RegisterRequest{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     domain.Role(payload.Role),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{User: userToAPI(user), Token: token})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	user, token, err := h.auth.Login(r.Context(), domain.LoginRequest{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: userToAPI(user), Token: token})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	h.auth.Logout(r.Context(), user)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// handleVerifyToken reports whether a token is structurally valid and maps to
// an existing active account. It is unauthenticated: the token under test is
// in the body, not the Authorization header.
func (h *Handler) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	var payload verifyTokenPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	user, err := h.auth.VerifyToken(r.Context(), payload.Token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"user":  userToAPI(user),
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	user, err := h.auth.Me(r.Context(), actor.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToAPI(user))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload updateProfilePayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	user, err := h.auth.UpdateProfile(r.Context(), actor.ID, domain.UpdateProfileRequest{
		Name:  payload.Name,
		Phone: payload.Phone,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToAPI(user))
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload changePasswordPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	err := h.auth.ChangePassword(r.Context(), actor.ID, domain.ChangePasswordRequest{
		CurrentPassword: payload.CurrentPassword,
		NewPassword:     payload.NewPassword,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}
