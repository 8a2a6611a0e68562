package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jatinenterprises/site-backend/internal/config"
	"github.com/jatinenterprises/site-backend/internal/infra/auth"
	"github.com/jatinenterprises/site-backend/internal/infra/database"
	"github.com/jatinenterprises/site-backend/internal/infra/http/handlers"
	"github.com/jatinenterprises/site-backend/internal/infra/http/middleware"
	"github.com/jatinenterprises/site-backend/internal/infra/images"
	"github.com/jatinenterprises/site-backend/internal/infra/integration/identity"
	"github.com/jatinenterprises/site-backend/internal/infra/mail"
	"github.com/jatinenterprises/site-backend/internal/infra/queue"
	"github.com/jatinenterprises/site-backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	contactRepo := database.NewContactRepository(db)
	productRepo := database.NewProductRepository(db)
	testimonialRepo := database.NewTestimonialRepository(db)

	// 2. Gateways and adapters
	mailSender := mail.NewEmailSender(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
		cfg.MailFrom, cfg.MailInbox,
	)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	identityClient := identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityAPIKey)
	gate := auth.NewGate(identityClient, cfg.AdminEmail)
	cdn := images.NewCDN(cfg.CloudinaryCloudName)

	// 3. Worker (consumes lead events, thanks the visitor)
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go worker.Start(queue.QueueName)

	// 4. Use cases
	submitUC := usecase.NewSubmitContactUseCase(contactRepo, mailSender, producer)
	console := usecase.NewTriageConsole(contactRepo, gate)

	// 5. Handlers
	contactHandler := handlers.NewContactHandler(submitUC)
	crmHandler := handlers.NewCRMHandler(console)
	authHandler := handlers.NewAuthHandler(gate)
	catalogHandler := handlers.NewCatalogHandler(productRepo, testimonialRepo, cdn)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, mailSender)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/contact", contactHandler.Submit)
	r.Get("/catalog/products", catalogHandler.ListProducts)
	r.Get("/testimonials", catalogHandler.ListTestimonials)

	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/oauth", authHandler.OAuthLogin)
	r.Post("/auth/logout", authHandler.Logout)
	r.Post("/auth/phone/start", authHandler.StartPhoneVerification)
	r.Post("/auth/phone/verify", authHandler.VerifyPhoneCode)

	r.Route("/crm", func(r chi.Router) {
		r.Use(middleware.WithViewer(gate))
		r.Get("/contacts", crmHandler.ListContacts)
		r.Post("/contacts", crmHandler.CreateContact)
		r.Get("/contacts/{id}/form", crmHandler.EditForm)
		r.Put("/contacts/{id}", crmHandler.UpdateContact)
		r.Patch("/contacts/{id}/status", crmHandler.ChangeStatus)
		r.Delete("/contacts/{id}", crmHandler.DeleteContact)
	})

	addr := ":" + cfg.Port
	log.Printf("site backend listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
