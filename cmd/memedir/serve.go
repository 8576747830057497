package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/memedir/internal/config"
	"github.com/aretw0/memedir/internal/web"
)

var (
	serveAddr   string
	watchConfig bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web UI",
	Long: `Serve starts the web UI: a table view at /, a card view at /list and an edit
form per meme. With --watch-config the log level follows edits to the config file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := slog.Default()
		service := newService()

		srv, err := web.NewServer(service, logger)
		if err != nil {
			fatal("Error building server", err)
		}

		if watchConfig {
			if cfg.File == "" {
				logger.Warn("no config file to watch")
			} else if err := config.Watch(ctx, cfg.File, logger, applyReload); err != nil {
				fatal("Error watching config", err)
			}
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Address
		}
		if err := srv.Run(ctx, addr); err != nil {
			fatal("Error serving", err)
		}
	},
}

// applyReload carries the settings that can change without a restart.
func applyReload(c config.Config) {
	if verbose {
		return
	}
	level, err := config.ParseLevel(c.Log.Level)
	if err != nil {
		return
	}
	if level != logLevel.Level() {
		slog.Info("log level changed", "from", logLevel.Level(), "to", level)
		logLevel.Set(level)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	serveCmd.Flags().BoolVar(&watchConfig, "watch-config", false, "Reload log level when the config file changes")
}
