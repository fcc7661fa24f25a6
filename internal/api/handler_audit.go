package api

import (
	"net/http"

	"church-platform/internal/domain"
)

func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{Page: pageFromQuery(r)}
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind := domain.AuditKind(raw)
		filter.Kind = &kind
	}
	if raw := r.URL.Query().Get("actor_id"); raw != "" {
		filter.ActorID = &raw
	}
	filter.Since = timeFromQuery(r, "since")

	entries, total, err := h.audit.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: auditEntriesToAPI(entries), Total: total})
}
