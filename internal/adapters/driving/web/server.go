package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Options configures the web server.
type Options struct {
	// AllowedOrigins lists origins allowed to call the JSON API.
	// Empty disables CORS entirely.
	AllowedOrigins []string

	// Now returns the current time for the page header. Defaults to time.Now.
	Now func() time.Time
}

// Server serves the browser client and the JSON API.
type Server struct {
	ports    *Ports
	opts     Options
	tmpl     *template.Template
	renderer *Renderer
	handler  http.Handler
}

// NewServer creates a web server over the given ports.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating web server: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		ports:    ports,
		opts:     opts,
		tmpl:     tmpl,
		renderer: NewRenderer(),
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(requestLogger)
	mux.Use(middleware.Recoverer)

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mux.Get("/", s.wrap(s.handleIndex))
	mux.Post("/analyze", s.wrap(s.handleAnalyzeForm))
	mux.Post("/clear", s.wrap(s.handleClearForm))
	mux.Post("/history/{id}", s.wrap(s.handleHistoryForm))

	mux.Route("/api/v1", func(rt chi.Router) {
		if len(s.opts.AllowedOrigins) > 0 {
			rt.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.opts.AllowedOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}
		rt.Get("/session", s.wrapAPI(s.apiSession))
		rt.Post("/analyses", s.wrapAPI(s.apiAnalyze))
		rt.Delete("/input", s.wrapAPI(s.apiClearInput))
		rt.Get("/history", s.wrapAPI(s.apiHistory))
		rt.Post("/history/{id}/select", s.wrapAPI(s.apiSelectHistory))
	})

	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web client listening on http://%s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		<-errCh
		return nil
	}
}

func (s *Server) modelName() string {
	if s.ports.Settings == nil {
		return domain.DefaultModel
	}
	cfg, err := s.ports.Settings.Get()
	if err != nil || cfg == nil || cfg.Provider.Model == "" {
		return domain.DefaultModel
	}
	return cfg.Provider.Model
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.L().Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
