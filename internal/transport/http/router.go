package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lamiarosa/store-api/internal/application/auth"
	"github.com/lamiarosa/store-api/internal/application/contact"
	"github.com/lamiarosa/store-api/internal/application/order"
	"github.com/lamiarosa/store-api/internal/config"
	"github.com/lamiarosa/store-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/lamiarosa/store-api/internal/infrastructure/jwt"
	"github.com/lamiarosa/store-api/internal/infrastructure/mail"
	s3infra "github.com/lamiarosa/store-api/internal/infrastructure/s3"
	"github.com/lamiarosa/store-api/internal/infrastructure/sns"
	"github.com/lamiarosa/store-api/internal/transport/http/handler"
	appmiddleware "github.com/lamiarosa/store-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	OtpRepo     *dynamo.OtpRepo
	OrderRepo   *dynamo.OrderRepo
	ContactRepo *dynamo.ContactRepo
	ImageStore  *s3infra.Store
	Mailer      mail.Mailer
	Publisher   sns.Publisher // optional
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	// Credentials must be allowed: the session travels as a cookie.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)
	optionalAuthMw := appmiddleware.OptionalAuth(deps.JWTProvider)

	authSvc := auth.NewService(auth.ServiceDeps{
		OtpRepo: deps.OtpRepo,
		Mailer:  deps.Mailer,
		Tokens:  deps.JWTProvider,
	})
	orderSvc := order.NewService(order.ServiceDeps{
		OrderRepo: deps.OrderRepo,
		Images:    deps.ImageStore,
		Mailer:    deps.Mailer,
		ShopEmail: cfg.ShopEmail,
	})
	contactSvc := contact.NewService(contact.ServiceDeps{
		ContactRepo: deps.ContactRepo,
		Mailer:      deps.Mailer,
		Publisher:   deps.Publisher,
		ShopEmail:   cfg.ShopEmail,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, deps.JWTProvider.Expiry())
	orderH := handler.NewOrderHandler(orderSvc)
	contactH := handler.NewContactHandler(contactSvc)
	imageH := handler.NewImageHandler(deps.ImageStore)

	// ── Public routes ────────────────────────────────────────────────────
	r.Get("/", healthH.Status)
	r.Post("/send-code", authH.SendCode)
	r.Post("/verify-code", authH.VerifyCode)
	r.Post("/logout", authH.Logout)
	r.Post("/contact", contactH.Submit)
	r.Get("/images/{key}", imageH.Get)
	r.Get("/test-email", orderH.TestEmail)

	// ── Cookie resolved best-effort ──────────────────────────────────────
	r.With(optionalAuthMw).Get("/me", authH.Me)
	r.With(optionalAuthMw).Post("/create-payment", orderH.CreatePayment)

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Post("/orders", orderH.Create)
		r.Get("/orders", orderH.List)
	})

	return r
}
