package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/lamiarosa/store-api/internal/domain"
	"github.com/lamiarosa/store-api/internal/infrastructure/mail"
)

// codeTTL is the fixed validity window of a login code.
const codeTTL = 5 * time.Minute

// Verification failures carry their user-facing message; all of them map to
// HTTP 400 at the transport layer.
var (
	ErrCodeNotFound = errors.New("code not found")
	ErrWrongCode    = errors.New("wrong code")
	ErrCodeExpired  = errors.New("code expired")
)

type SendCodeRequest struct {
	Email string `json:"email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// OtpRepository is the login-code store. Put overwrites any outstanding code
// for the same email.
type OtpRepository interface {
	Put(ctx context.Context, o *domain.OtpCode) error
	Get(ctx context.Context, email string) (*domain.OtpCode, error)
	Delete(ctx context.Context, email string) error
}

// TokenSigner issues a session token bound to an email identity.
type TokenSigner interface {
	Sign(email string) (string, error)
}

type Service interface {
	// SendCode issues a fresh login code for the email and mails it.
	SendCode(ctx context.Context, req SendCodeRequest) error
	// VerifyCode checks the submitted code and, on success, returns a signed
	// session token asserting the email as identity.
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (string, error)
}

type ServiceDeps struct {
	OtpRepo OtpRepository
	Mailer  mail.Mailer
	Tokens  TokenSigner
}

type service struct {
	otpRepo OtpRepository
	mailer  mail.Mailer
	tokens  TokenSigner
}

func NewService(d ServiceDeps) Service {
	return &service{otpRepo: d.OtpRepo, mailer: d.Mailer, tokens: d.Tokens}
}

func (s *service) SendCode(ctx context.Context, req SendCodeRequest) error {
	if req.Email == "" {
		return fmt.Errorf("email required: %w", domain.ErrBadRequest)
	}

	code, err := newLoginCode()
	if err != nil {
		return err
	}

	o := &domain.OtpCode{
		Email:     req.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(codeTTL).Unix(),
	}
	if err := s.otpRepo.Put(ctx, o); err != nil {
		return fmt.Errorf("store login code: %w", err)
	}

	// The code stays persisted even when delivery fails, so a retried
	// send-code overwrites rather than stacks.
	body := fmt.Sprintf("<h2>Your code: %s</h2>", code)
	if err := s.mailer.Send(req.Email, "Your login code", body, nil); err != nil {
		return fmt.Errorf("send login code: %w", err)
	}
	return nil
}

func (s *service) VerifyCode(ctx context.Context, req VerifyCodeRequest) (string, error) {
	o, err := s.otpRepo.Get(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrCodeNotFound
		}
		return "", err
	}
	if o.Code != req.Code {
		return "", ErrWrongCode
	}
	if o.Expired(time.Now()) {
		return "", ErrCodeExpired
	}

	// Codes are single-use: consume before issuing the session.
	if err := s.otpRepo.Delete(ctx, req.Email); err != nil {
		slog.Warn("failed to delete used login code", "email", req.Email, "err", err)
	}

	return s.tokens.Sign(req.Email)
}

// newLoginCode draws a uniform random 6-digit code in [100000, 999999].
func newLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
