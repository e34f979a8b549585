package httpapi

import (
	"net/http"
	"time"

	"coursetrack-backend-go/internal/config"
	"coursetrack-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Stores is the persistence the HTTP layer needs. Postgres repositories and the
// in-memory store both satisfy it.
type Stores struct {
	Users        services.UserRepository
	Catalog      services.CatalogRepository
	Progress     services.ProgressRepository
	Certificates services.CertificateRepository
	DB           services.Pinger
}

type Server struct {
	Config       config.Config
	Auth         *services.AuthService
	Progress     *services.ProgressService
	Certificates *services.CertificateService
	Catalog      *services.CatalogService
	Health       *services.HealthService
	Hub          *services.ProgressHub
	Logger       *zap.Logger
	validate     *validator.Validate
}

func NewServer(cfg config.Config, stores Stores, hub *services.ProgressHub, logger *zap.Logger) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.AccessTTL(),
	}
	hasher := services.PasswordHasher{Algorithm: cfg.PasswordHash, BcryptCost: cfg.BcryptCost}
	timeout := cfg.DBTimeout()

	var publisher services.ProgressPublisher
	if hub != nil {
		publisher = hub
	}
	return &Server{
		Config:       cfg,
		Auth:         services.NewAuthService(stores.Users, hasher, tokens, timeout, logger),
		Progress:     services.NewProgressService(stores.Progress, publisher, timeout),
		Certificates: services.NewCertificateService(stores.Certificates, stores.Catalog, timeout, logger),
		Catalog:      services.NewCatalogService(stores.Catalog, timeout),
		Health:       services.NewHealthService(stores.DB, cfg.HealthDiskPath, timeout),
		Hub:          hub,
		Logger:       logger,
		validate:     newValidator(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.Logger))
	r.Use(Recoverer(s.Logger))
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Group(func(public chi.Router) {
				if limit := s.Config.AuthRateLimitPerMinute; limit > 0 {
					public.Use(httprate.Limit(limit, time.Minute,
						httprate.WithKeyFuncs(httprate.KeyByIP),
						httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
							WriteError(w, http.StatusTooManyRequests, "Too many requests")
						}),
					))
				}
				public.Post("/register", s.Register)
				public.Post("/login", s.Login)
			})
			auth.With(WithAuth(s.Auth, s.Logger)).Get("/me", s.Me)
		})

		api.Route("/courses", func(courses chi.Router) {
			courses.Get("/", s.ListCourses)
			courses.Get("/{courseId}", s.GetCourse)
			courses.Get("/{courseId}/videos", s.ListVideos)
		})

		api.Route("/progress", func(progress chi.Router) {
			progress.Use(WithAuth(s.Auth, s.Logger))
			progress.Post("/update", s.UpdateProgress)
			progress.Get("/user/{userId}/course/{courseId}", s.ListProgress)
		})

		api.Route("/certificates", func(certs chi.Router) {
			certs.Use(WithAuth(s.Auth, s.Logger))
			certs.Post("/generate", s.GenerateCertificate)
			certs.Get("/user/{userId}/course/{courseId}", s.GetCertificate)
		})

		api.Get("/health", s.HealthCheck)
	})

	if s.Hub != nil {
		r.Get("/ws/progress", s.ProgressSocket)
	}
	return r
}
