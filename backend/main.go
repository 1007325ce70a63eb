package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"asset-dashboard/backend/config"
	"asset-dashboard/backend/global"
	"asset-dashboard/backend/initialize"
	"asset-dashboard/backend/server"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := initialize.Build(ctx, *cfgPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("startup failed")
	}
	defer app.Close()

	if err := config.Watch(*cfgPath, func(c *config.Config) {
		initialize.SetLogLevel(c.LogLevel)
		global.Logger.Info().Str("level", c.LogLevel).Msg("config reloaded")
	}); err != nil {
		global.Logger.Warn().Err(err).Msg("config watch disabled")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.RunHTTPServer(gctx, app.Cfg.HTTP.Addr(), app.Router)
	})
	if app.Cfg.LoadInterval > 0 {
		g.Go(func() error {
			return app.Assets.RunLoadRefresher(gctx, app.Cfg.LoadInterval)
		})
	}
	if err := g.Wait(); err != nil {
		global.Logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
