package fakebackend

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"taskflow/internal/logging"
)

// ShutdownTimeout bounds how long in-flight requests may take once Serve is asked to stop
const ShutdownTimeout = 10 * time.Second

// DevHandler mounts the REST contract at / and the collectors of g at /metrics
func (s *Server) DevHandler(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.Mount("/", s.Handler())
	return r
}

// Serve answers requests on ln until ctx is done, then shuts down gracefully.
// A clean shutdown returns nil.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *logging.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("fake backend listening", logging.Fields{"addr": ln.Addr().String()})
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down fake backend", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
