package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lamiarosa/store-api/internal/application/auth"
	"github.com/lamiarosa/store-api/internal/transport/http/middleware"
)

// AuthHandler handles the passwordless login flow and identity probe.
type AuthHandler struct {
	svc        auth.Service
	sessionTTL time.Duration
}

func NewAuthHandler(svc auth.Service, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, sessionTTL: sessionTTL}
}

func (h *AuthHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req auth.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email required")
		return
	}
	if err := h.svc.SendCode(r.Context(), req); err != nil {
		slog.Error("send code failed", "email", req.Email, "err", err)
		writeError(w, http.StatusInternalServerError, "Mail error")
		return
	}
	writeJSON(w, http.StatusOK, OKEnvelope{OK: true})
}

func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Missing data")
		return
	}
	token, err := h.svc.VerifyCode(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrCodeNotFound) || errors.Is(err, auth.ErrWrongCode) || errors.Is(err, auth.ErrCodeExpired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("verify code failed", "email", req.Email, "err", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.sessionTTL.Seconds())))
	writeJSON(w, http.StatusOK, OKEnvelope{OK: true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, UserEnvelope{User: nil})
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{User: &SessionUser{ID: claims.UserID, Email: claims.Email}})
}

// Logout clears the cookie client-side. There is no server-side revocation:
// an already-issued token stays valid until its embedded expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, OKEnvelope{OK: true})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
