package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/adressbuch/apiserver/config"
	"github.com/adressbuch/apiserver/internal/auth"
	"github.com/adressbuch/apiserver/internal/db"
	"github.com/adressbuch/apiserver/internal/events"
	"github.com/adressbuch/apiserver/internal/handlers"
	"github.com/adressbuch/apiserver/internal/services"
	"github.com/adressbuch/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	publisher  *events.Publisher
}

// New constructs a Server with its full dependency graph: database
// pool, repositories, services, token service, credential verifier and
// the optional audit-event publisher.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	personRepo := store.NewPersonRepository(dbConn)
	greetingRepo := store.NewGreetingRepository(dbConn)

	personService := services.NewPersonService(personRepo, logger)
	greetingService := services.NewGreetingService(greetingRepo)

	var publisher *events.Publisher
	if cfg.MQURL != "" {
		backend, err := events.NewRabbitMQBackend(cfg.MQURL)
		if err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("connect message broker: %w", err)
		}
		publisher = events.NewPublisher(backend)
		personService.WithPublisher(publisher)
		logger.Info().Msg("person lifecycle events enabled")
	}

	if cfg.Auth.UsingDefaultSecret() {
		logger.Warn().Msg("JWT_SECRET is unset; using the weak development fallback, do not run this in production")
	}
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret)

	var verifier auth.CredentialVerifier
	if cfg.Auth.AdminPasswordHash != "" {
		verifier = auth.NewBcryptVerifier(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash)
	} else {
		verifier = auth.NewStaticVerifier(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	}

	authMiddleware := handlers.RequireAuth(tokens)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, verifier, tokens)
	router.Route("/person", func(r chi.Router) {
		handlers.PersonRouter(r, personService, authMiddleware)
	})
	router.Route("/hello", func(r chi.Router) {
		handlers.GreetingRouter(r, greetingService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		publisher:  publisher,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
