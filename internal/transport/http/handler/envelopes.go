package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lamiarosa/store-api/internal/domain"
)

// MessageEnvelope is the generic error wrapper.
type MessageEnvelope struct {
	Error string `json:"error,omitempty"`
}

// OKEnvelope acknowledges a successful write.
type OKEnvelope struct {
	OK      bool   `json:"ok"`
	OrderID string `json:"orderId,omitempty"`
}

// StatusEnvelope wraps the health response.
type StatusEnvelope struct {
	Status string `json:"status"`
}

// SessionUser is the identity exposed by the /me probe.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserEnvelope wraps the /me response; User is null for anonymous callers.
type UserEnvelope struct {
	User *SessionUser `json:"user"`
}

// OrdersEnvelope wraps the order listing.
type OrdersEnvelope struct {
	Orders []domain.Order `json:"orders"`
}

// ContactEnvelope acknowledges a stored contact message.
type ContactEnvelope struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
