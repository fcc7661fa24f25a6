package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"church-platform/internal/domain"
)

type assetPayload struct {
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	AcquiredAt *time.Time `json:"acquired_at"`
	ValueCents int64      `json:"value_cents"`
	Condition  string     `json:"condition"`
	Location   string     `json:"location"`
	Notes      string     `json:"notes"`
}

func (p *assetPayload) toDomain() *domain.Asset {
	return &domain.Asset{
		Name:       p.Name,
		Category:   p.Category,
		AcquiredAt: p.AcquiredAt,
		ValueCents: p.ValueCents,
		Condition:  p.Condition,
		Location:   p.Location,
		Notes:      p.Notes,
	}
}

func (h *Handler) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload assetPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	created, err := h.assets.Create(r.Context(), actor, payload.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, assetToAPI(created))
}

func (h *Handler) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, total, err := h.assets.List(r.Context(), pageFromQuery(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: assetsToAPI(assets), Total: total})
}

func (h *Handler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assetToAPI(asset))
}

func (h *Handler) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload assetPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	updated, err := h.assets.Update(r.Context(), actor, chi.URLParam(r, "id"), payload.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assetToAPI(updated))
}

func (h *Handler) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	if err := h.assets.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "asset deleted"})
}
