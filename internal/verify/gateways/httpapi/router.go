package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// DefaultMaxUploadBytes bounds bulk uploads and JSON bodies.
const DefaultMaxUploadBytes = 5 << 20

// Verifier is the engine behind the API.
type Verifier interface {
	Verify(ctx context.Context, address string, creds domain.Credentials) domain.Report
	VerifyBatch(addresses []string) domain.Batch
}

// Options configures NewRouter.
type Options struct {
	Verifier Verifier
	Logger   log.Logger
	// Registry receives the HTTP metrics and is served on /metrics.
	Registry       *prometheus.Registry
	CORSOrigins    []string
	MaxUploadBytes int64
}

// NewRouter returns the chi router serving the verification API.
func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	h := &handler{
		verifier:  opts.Verifier,
		logger:    opts.Logger,
		maxUpload: opts.MaxUploadBytes,
	}
	m := newHTTPMetrics(opts.Registry)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(m.middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/verify", h.verify)
		r.Post("/verify/bulk", h.verifyBulk)
		r.Post("/export", h.export)
	})
	return r
}
