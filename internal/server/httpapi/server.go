// Package httpapi is the HTTP JSON boundary of the stockfolio server. It
// translates requests into service calls and sentinel errors into statuses;
// no business logic lives here.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/dsmirnov/stockfolio/internal/logging"
	"github.com/dsmirnov/stockfolio/internal/server/config"
	"github.com/dsmirnov/stockfolio/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config     *config.Config
	logger     logging.Logger
	users      *services.UserService
	stocks     *services.StockService
	portfolios *services.PortfolioService
	filings    *services.FilingService
	validate   *validator.Validate

	http *http.Server
}

func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, stocks *services.StockService,
	portfolios *services.PortfolioService, filings *services.FilingService) *Server {

	s := &Server{
		config:     cfg,
		logger:     logger,
		users:      users,
		stocks:     stocks,
		portfolios: portfolios,
		filings:    filings,
		validate:   validator.New(),
	}
	s.http = &http.Server{
		Addr:    cfg.EndpointAddrHTTP,
		Handler: s.routes(),
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/stocks", s.handleStockList)
		r.Get("/stocks/{symbol}", s.handleStockGet)
		r.Get("/stocks/{symbol}/filings", s.handleFilingList)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/verify", s.handleVerify)

			r.Get("/filings/{id}/document", s.handleFilingDocument)

			r.Get("/portfolio", s.handlePortfolioList)
			r.Post("/portfolio", s.handlePortfolioAdd)
			r.Delete("/portfolio/{symbol}", s.handlePortfolioRemove)
		})
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
