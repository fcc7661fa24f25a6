package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"church-platform/internal/domain"
)

type memberPayload struct {
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Mobile        string      `json:"mobile"`
	BirthDate     time.Time   `json:"birth_date"`
	Gender        string      `json:"gender"`
	MaritalStatus string      `json:"marital_status"`
	Address       addressView `json:"address"`
	Occupation    string      `json:"occupation"`
	Status        string      `json:"status"`
}

func (p *memberPayload) toDomain() *domain.Member {
	return &domain.Member{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         p.Phone,
		Mobile:        p.Mobile,
		BirthDate:     p.BirthDate,
		Gender:        p.Gender,
		MaritalStatus: p.MaritalStatus,
		Address: domain.Address{
			Street:   p.Address.Street,
			Number:   p.Address.Number,
			District: p.Address.District,
			City:     p.Address.City,
			State:    p.Address.State,
			ZipCode:  p.Address.ZipCode,
		},
		Occupation: p.Occupation,
		Status:     p.Status,
	}
}

func (h *Handler) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload memberPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	created, err := h.members.Create(r.Context(), actor, payload.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberToAPI(created))
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, total, err := h.members.List(r.Context(),
		r.URL.Query().Get("search"), pageFromQuery(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: membersToAPI(members), Total: total})
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberToAPI(member))
}

func (h *Handler) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload memberPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	updated, err := h.members.Update(r.Context(), actor, chi.URLParam(r, "id"), payload.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberToAPI(updated))
}

func (h *Handler) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	if err := h.members.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "member deleted"})
}
