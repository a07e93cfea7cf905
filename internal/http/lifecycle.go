package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// newHTTPServer applies the timeouts shared by the API and metrics servers.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// listenAndServe blocks until srv stops. A graceful Shutdown is not an error.
func listenAndServe(srv *http.Server, name string, logger *slog.Logger) error {
	logger.Info("starting server", slog.String("server", name), slog.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

// Runnable is a server with a blocking Start and a graceful Shutdown.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Serve runs every server until ctx is cancelled or one of them fails, then shuts all
// of them down within shutdownTimeout. The first start failure is returned, joined with
// any shutdown errors.
func Serve(ctx context.Context, shutdownTimeout time.Duration, logger *slog.Logger, servers ...Runnable) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			return srv.Start(gctx)
		})
	}

	var shutdownErr error
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-gctx.Done()

		logger.Info("stopping servers", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown: %w", err))
			}
		}
		shutdownErr = errors.Join(errs...)
	}()

	err := g.Wait()
	<-stopped
	return errors.Join(err, shutdownErr)
}
