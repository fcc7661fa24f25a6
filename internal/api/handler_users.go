package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"church-platform/internal/domain"
)

type updateUserPayload struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, total, err := h.users.List(r.Context(), pageFromQuery(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: usersToAPI(users), Total: total})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToAPI(user))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload updateUserPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}

	req := domain.UpdateUserRequest{Name: payload.Name, Email: payload.Email}
	if payload.Role != nil {
		role := domain.Role(*payload.Role)
		req.Role = &role
	}
	if payload.Status != nil {
		status := domain.UserStatus(*payload.Status)
		req.Status = &status
	}

	user, err := h.users.Update(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToAPI(user))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	if err := h.users.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
