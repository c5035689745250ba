package order

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lamiarosa/store-api/internal/domain"
	"github.com/lamiarosa/store-api/internal/infrastructure/mail"
	"github.com/lamiarosa/store-api/internal/pkg/id"
)

type CreateOrderRequest struct {
	Items []domain.OrderItem `json:"items" validate:"required,min=1"`
	Total float64            `json:"total" validate:"required"`
}

// CreatePaymentRequest is the simulated checkout payload. Total arrives as
// the cart's display string (currency symbol included) and is trusted as-is:
// no price or stock verification happens here.
type CreatePaymentRequest struct {
	Cart  []domain.OrderItem `json:"cart"`
	Total string             `json:"total"`
	Email string             `json:"email"`
}

// OrderRepository is the order store.
type OrderRepository interface {
	Put(ctx context.Context, o *domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// ImageStore fetches product images for inline email attachments.
type ImageStore interface {
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
}

type Service interface {
	// Create persists an order for an authenticated user and returns its ID.
	Create(ctx context.Context, userID string, req CreateOrderRequest) (string, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// CreatePayment records a checkout (guest or authenticated) and sends the
	// confirmation email best-effort.
	CreatePayment(ctx context.Context, userID string, req CreatePaymentRequest) (string, error)
	// SendTestEmail mails a sample order confirmation to the shop address.
	SendTestEmail(ctx context.Context) error
}

type ServiceDeps struct {
	OrderRepo OrderRepository
	Images    ImageStore
	Mailer    mail.Mailer
	ShopEmail string
}

type service struct {
	orderRepo OrderRepository
	images    ImageStore
	mailer    mail.Mailer
	shopEmail string
}

func NewService(d ServiceDeps) Service {
	return &service{orderRepo: d.OrderRepo, images: d.Images, mailer: d.Mailer, shopEmail: d.ShopEmail}
}

func (s *service) Create(ctx context.Context, userID string, req CreateOrderRequest) (string, error) {
	if len(req.Items) == 0 || req.Total <= 0 {
		return "", fmt.Errorf("invalid order data: %w", domain.ErrBadRequest)
	}
	o := &domain.Order{
		OrderID:   id.New(),
		UserID:    userID,
		Items:     req.Items,
		Total:     req.Total,
		Status:    domain.OrderStatusPaid,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.orderRepo.Put(ctx, o); err != nil {
		return "", fmt.Errorf("store order: %w", err)
	}
	return o.OrderID, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *service) CreatePayment(ctx context.Context, userID string, req CreatePaymentRequest) (string, error) {
	if len(req.Cart) == 0 {
		return "", fmt.Errorf("cart is empty: %w", domain.ErrBadRequest)
	}
	if req.Email == "" {
		return "", fmt.Errorf("email required: %w", domain.ErrBadRequest)
	}
	total, err := parseDisplayTotal(req.Total)
	if err != nil {
		return "", fmt.Errorf("invalid total %q: %w", req.Total, domain.ErrBadRequest)
	}

	o := &domain.Order{
		OrderID:   id.New(),
		UserID:    userID,
		Items:     req.Cart,
		Total:     total,
		Status:    domain.OrderStatusPaid,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.orderRepo.Put(ctx, o); err != nil {
		return "", fmt.Errorf("store order: %w", err)
	}

	// The stored order is the source of truth; a failed confirmation email
	// must not fail the checkout.
	s.sendConfirmationEmail(ctx, req.Email, o)

	return o.OrderID, nil
}

func (s *service) SendTestEmail(ctx context.Context) error {
	o := &domain.Order{
		Items: []domain.OrderItem{
			{Title: "Side-Zip Turtleneck Sweater", Qty: 1, Price: 1249.90, Image: "black-zip-cardigan-1.jpg"},
		},
		Total: 1249.90,
	}
	html, inline := s.renderConfirmation(ctx, o)
	return s.mailer.Send(s.shopEmail, "TEST ORDER EMAIL – La Mia Rosa", html, inline)
}

// parseDisplayTotal converts a cart display total like "₺1249.90" into a
// number, stripping the currency symbol, spaces and thousands separators.
func parseDisplayTotal(s string) (float64, error) {
	cleaned := strings.NewReplacer("₺", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, fmt.Errorf("empty total")
	}
	return strconv.ParseFloat(cleaned, 64)
}
