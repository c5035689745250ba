package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lamiarosa/store-api/internal/domain"
	"github.com/lamiarosa/store-api/internal/infrastructure/mail"
	"github.com/lamiarosa/store-api/internal/infrastructure/sns"
	"github.com/lamiarosa/store-api/internal/pkg/id"
)

type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Comment string `json:"comment"`
}

// ContactRepository is the contact-message store.
type ContactRepository interface {
	Put(ctx context.Context, c *domain.Contact) error
}

type Service interface {
	// Submit persists a contact-form message and notifies the shop.
	Submit(ctx context.Context, req SubmitRequest) error
}

type ServiceDeps struct {
	ContactRepo ContactRepository
	Mailer      mail.Mailer
	Publisher   sns.Publisher // optional; nil disables topic notifications
	ShopEmail   string
}

type service struct {
	contactRepo ContactRepository
	mailer      mail.Mailer
	publisher   sns.Publisher
	shopEmail   string
}

func NewService(d ServiceDeps) Service {
	return &service{contactRepo: d.ContactRepo, mailer: d.Mailer, publisher: d.Publisher, shopEmail: d.ShopEmail}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) error {
	if req.Email == "" || req.Comment == "" {
		return fmt.Errorf("email and comment required: %w", domain.ErrBadRequest)
	}

	c := &domain.Contact{
		ContactID: id.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.contactRepo.Put(ctx, c); err != nil {
		return fmt.Errorf("store contact message: %w", err)
	}

	// The stored row is the source of truth; notification failures are
	// logged and swallowed.
	s.notify(ctx, c)
	return nil
}

func (s *service) notify(ctx context.Context, c *domain.Contact) {
	body := fmt.Sprintf(`
<h2>New Customer Message</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Message:</strong><br/>%s</p>`, c.Name, c.Email, c.Phone, c.Message)

	if err := s.mailer.Send(s.shopEmail, "New message from Communication page", body, nil); err != nil {
		slog.Error("contact notification email failed", "contact_id", c.ContactID, "err", err)
	}

	if s.publisher != nil {
		msg := fmt.Sprintf("New contact message from %s <%s>", c.Name, c.Email)
		if err := s.publisher.Publish(ctx, "New contact message", msg); err != nil {
			slog.Error("contact notification publish failed", "contact_id", c.ContactID, "err", err)
		}
	}
}
