package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"church-platform/internal/domain"
)

type eventPayload struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
}

func (p *eventPayload) toDomain() *domain.Event {
	return &domain.Event{
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Category:    p.Category,
		StartsAt:    p.StartsAt,
		EndsAt:      p.EndsAt,
		Location:    p.Location,
		Capacity:    p.Capacity,
	}
}

func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload eventPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	created, err := h.events.Create(r.Context(), actor, payload.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, eventToAPI(created))
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, total, err := h.events.List(r.Context(),
		timeFromQuery(r, "from"), timeFromQuery(r, "to"), pageFromQuery(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: eventsToAPI(events), Total: total})
}

func (h *Handler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventToAPI(event))
}

func (h *Handler) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload eventPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	updated, err := h.events.Update(r.Context(), actor, chi.URLParam(r, "id"), payload.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventToAPI(updated))
}

func (h *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	if err := h.events.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}
