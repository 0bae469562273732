package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

const healthPath = "/healthz"

var tracer = otel.Tracer("internal/delivery/httpapi")

type CleanupFunc func(ctx context.Context) error

// Service is one HTTP process: a chi router with the shared middleware stack
// and the routes of a single backend service.
type Service struct {
	addr      string
	logger    *slog.Logger
	validator *Validator
	cors      bool
	panicBody errorResponse
	register  func(r chi.Router)
}

func newService(addr string, logger *slog.Logger) *Service {
	return &Service{
		addr:      addr,
		logger:    logger.With(slog.String("component", "http")),
		validator: NewValidator(),
		panicBody: internalServerErr,
	}
}

// Handler builds the router.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(
		Recoverer(s.logger, s.panicBody),
		RequestID,
		Trace(tracer),
		Logging(s.logger),
	)
	if s.cors {
		r.Use(Cors())
	}

	r.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.register(r)

	return r
}

// Run starts listening and serves in the background. The returned func shuts
// the server down gracefully.
func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      90 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

// Addr is the configured listen address.
func (s *Service) Addr() string {
	return s.addr
}
