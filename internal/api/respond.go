package api

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope is the JSON body for every error response.
type errorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// listEnvelope wraps paginated list responses.
type listEnvelope struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Code: status, Message: message})
}

// writeError maps a domain error to its status. Internal errors get a generic
// message; the detail belongs in the server log, not the response.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		message = "internal server error"
	}
	writeErrorMessage(w, status, message)
}

// decodeBody parses a JSON request body into dst.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
