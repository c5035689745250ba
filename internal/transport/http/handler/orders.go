package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lamiarosa/store-api/internal/application/order"
	"github.com/lamiarosa/store-api/internal/domain"
	"github.com/lamiarosa/store-api/internal/pkg/validate"
	"github.com/lamiarosa/store-api/internal/transport/http/middleware"
)

// OrderHandler handles order placement, listing and the simulated checkout.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req order.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order data")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order data")
		return
	}
	orderID, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err, "order insert failed", "Order save failed")
		return
	}
	writeJSON(w, http.StatusOK, OKEnvelope{OK: true, OrderID: orderID})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	orders, err := h.svc.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		slog.Error("orders fetch failed", "user_id", claims.UserID, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, OrdersEnvelope{Orders: orders})
}

// CreatePayment records a checkout for a guest or authenticated caller. The
// client-supplied total is trusted as-is: payment is simulated and no price
// verification happens server-side.
func (h *OrderHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var userID string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		userID = claims.UserID
	}
	var req order.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Cart) == 0 {
		writeError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email required")
		return
	}
	orderID, err := h.svc.CreatePayment(r.Context(), userID, req)
	if err != nil {
		httpError(w, err, "create payment failed", "Payment failed")
		return
	}
	writeJSON(w, http.StatusOK, OKEnvelope{OK: true, OrderID: orderID})
}

func (h *OrderHandler) TestEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SendTestEmail(r.Context()); err != nil {
		slog.Error("test email failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Email failed")
		return
	}
	writeJSON(w, http.StatusOK, OKEnvelope{OK: true})
}
