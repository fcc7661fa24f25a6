package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"church-platform/internal/domain"
)

type settingPayload struct {
	Value string `json:"value"`
}

func (h *Handler) handleListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]settingView, len(settings))
	for i := range settings {
		out[i] = settingToAPI(&settings[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settings.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingToAPI(setting))
}

func (h *Handler) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	var payload settingPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}
	setting := &domain.Setting{Key: chi.URLParam(r, "key"), Value: payload.Value}
	if err := h.settings.Put(r.Context(), actor, setting); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingToAPI(setting))
}
