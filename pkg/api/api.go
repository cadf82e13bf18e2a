// Package api runs an HTTP API with graceful shutdown.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// API defines the interface for API services.
type API interface {
	RegisterRoutes(router *gin.Engine)
}

// Serve registers api on router and serves it on addr until ctx is done,
// then shuts down, giving in-flight requests up to shutdownTimeout to
// finish. Request contexts are cancelled only once that drain is over.
func Serve(ctx context.Context, addr string, router *gin.Engine, api API, shutdownTimeout time.Duration, logger *zap.Logger) error {
	api.RegisterRoutes(router)

	baseCtx, cancelRequests := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelRequests()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server...", zap.String("address", addr), zap.String("ginMode", gin.Mode()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Attempting graceful shutdown of HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := httpServer.Shutdown(shutdownCtx)
	cancelRequests()
	if shutdownErr != nil {
		logger.Warn("Graceful shutdown timed out; cancelling in-flight requests", zap.Error(shutdownErr))
		return shutdownErr
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
