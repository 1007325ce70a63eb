package main

import (
	"context"
	"fmt"
	"time"

	"asset-dashboard/cmd/dashboard/config"
	"asset-dashboard/cmd/dashboard/logger"
	"asset-dashboard/cmd/dashboard/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Terminal dashboard for rack power assets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config/config.yaml", "path to configuration file")

	root.AddCommand(newCardCmd(&cfgPath))
	return root
}

// newCardCmd prints a single asset card without starting the interactive program.
func newCardCmd(cfgPath *string) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "card <key>",
		Short: "Print the detail card of one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			client := ui.NewClient(cfg.BackendURL, cfg.Username, cfg.Password)
			info, err := client.Asset(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.BuildCard(info, args[0]).Render(width, false))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 60, "card width in columns")
	return cmd
}

func runTUI(ctx context.Context, cfg config.AppConfig) error {
	log, closer, err := logger.New(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	}
	session := ui.NewSession(ui.NewClient(cfg.BackendURL, cfg.Username, cfg.Password), rdb, log)
	defer session.Close()

	if err := session.Subscribe(ctx); err != nil {
		// polling still keeps the view fresh
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("live updates disabled")
	}

	log.Info().Str("backend", cfg.BackendURL).Msg("dashboard started")
	p := tea.NewProgram(ui.NewRootModel(session, cfg.RefreshInterval), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
