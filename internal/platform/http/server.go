package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"storefx/internal/config"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Start listens on the configured port and serves handler until ctx is cancelled.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler, onShutdown ...func()) error {
	listener, listenErr := net.Listen("tcp", ":"+cfg.Port)
	if listenErr != nil {
		return listenErr
	}
	logrus.Infof("✅ HTTP server listening on %s", cfg.Port)
	return Serve(ctx, listener, handler, onShutdown...)
}

// Serve runs the server on listener and shuts it down gracefully on ctx cancellation.
// onShutdown hooks run as soon as shutdown begins; long-lived handlers such as event
// streams rely on them to return, since Shutdown does not cancel request contexts.
func Serve(ctx context.Context, listener net.Listener, handler http.Handler, onShutdown ...func()) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	for _, hook := range onShutdown {
		server.RegisterOnShutdown(hook)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return shutdownErr
		}
		return nil
	case serveErr := <-errCh:
		return serveErr
	}
}
