// Package server exposes deposit tables, summaries, profiles and scenario
// results over a read-only JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
)

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	InvestmentCap  float64
	TopMovers      int
	RateLimitRPS   float64 // 0 disables rate limiting
	RateLimitBurst int
	CORSOrigins    []string
	CacheTTL       time.Duration
	FilePrefix     string
	Presets        scenario.Presets

	// Now stamps export file names; defaults to time.Now.
	Now func() time.Time
}

// Server serves one immutable deposit table.
type Server struct {
	table   deposit.Table
	opts    Options
	cache   *gocache.Cache
	limiter *rate.Limiter
	log     *zap.Logger
}

// New creates a server for t.
func New(t deposit.Table, opts Options) *Server {
	if opts.InvestmentCap <= 0 {
		opts.InvestmentCap = scenario.DefaultInvestmentCap
	}
	if opts.TopMovers <= 0 {
		opts.TopMovers = 5
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		table: t,
		opts:  opts,
		cache: gocache.New(opts.CacheTTL, 2*opts.CacheTTL),
		log:   zap.L().With(zap.String("component", "server")),
	}
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}
	return s
}

// Handler returns the HTTP router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.rateLimit)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/deposits", s.handleDeposits)
		r.Get("/deposits/{name}", s.handleDeposit)
		r.Get("/summary", s.handleSummary)
		r.Get("/scenario", s.handleScenario)
		r.Post("/scenario", s.handleScenario)
		r.Get("/scenario/presets", s.handlePresets)
		r.Get("/export.csv", s.handleExportCSV)
		r.Get("/export.xlsx", s.handleExportXLSX)
		r.Get("/map.geojson", s.handleMap)
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("starting server", zap.String("addr", addr), zap.Int("deposits", s.table.Len()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}
