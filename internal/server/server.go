// Package server exposes the estimator, community board, research feed and
// notebook sessions over a JSON HTTP API.
package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/feed"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/notebook"
)

type Server struct {
	db        *sql.DB
	feed      *feed.Client
	notebooks notebook.Store
	logger    *zap.Logger
	feedQuery string
	feedLimit int
}

type Options struct {
	DB        *sql.DB
	Feed      *feed.Client
	Notebooks notebook.Store
	Logger    *zap.Logger
	FeedLimit int
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.FeedLimit
	if limit <= 0 {
		limit = 9
	}
	return &Server{
		db:        opts.DB,
		feed:      opts.Feed,
		notebooks: opts.Notebooks,
		logger:    logger,
		feedQuery: feed.DefaultQuery,
		feedLimit: limit,
	}
}

// NewHTTPServer wires the router into an *http.Server with conservative timeouts.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.RegisterRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

// Run serves until ctx is cancelled, then shuts down within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := s.NewHTTPServer(addr)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("stopping http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
