package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lamiarosa/store-api/internal/application/contact"
)

// ContactHandler handles contact-form submissions.
type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contact.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Comment == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := h.svc.Submit(r.Context(), req); err != nil {
		httpError(w, err, "contact insert failed", "Database error")
		return
	}
	writeJSON(w, http.StatusOK, ContactEnvelope{Success: true})
}
