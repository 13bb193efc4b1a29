package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/audio"
	"github.com/leonardotrapani/tunescribe/internal/config"
	"github.com/leonardotrapani/tunescribe/internal/media"
	"github.com/leonardotrapani/tunescribe/internal/pipeline"
)

// Server is the HTTP front of the transcription service.
type Server struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	audio    *audio.Service
	media    *media.Service
	logger   *zap.Logger
	httpSrv  *http.Server
}

func New(cfg *config.Config, pl *pipeline.Pipeline, audioSvc *audio.Service, mediaSvc *media.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		pipeline: pl,
		audio:    audioSvc,
		media:    mediaSvc,
		logger:   logger,
	}
	s.httpSrv = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Routes builds the request mux. Exposed for tests.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/providers", s.handleProviders)
	mux.HandleFunc("GET /api/v1/search", s.handleSearch)
	mux.HandleFunc("POST /api/v1/download", s.handleDownload)
	mux.HandleFunc("POST /api/v1/trim", s.handleTrim)
	mux.HandleFunc("POST /api/v1/transcribe", s.handleTranscribe)

	return s.logRequests(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("address", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down http server")
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
