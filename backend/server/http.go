package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"asset-dashboard/backend/global"
)

const shutdownTimeout = 5 * time.Second

// RunHTTPServer serves handler on addr until ctx is cancelled, then drains connections.
func RunHTTPServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		global.Logger.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	global.Logger.Info().Msg("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
