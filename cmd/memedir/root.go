package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/memedir"
	"github.com/aretw0/memedir/internal/config"
	"github.com/aretw0/memedir/pkg/core"
)

var (
	verbose  bool
	cfgFile  string
	adapter  string
	endpoint string

	cfg      config.Config
	logLevel = new(slog.LevelVar)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memedir",
	Short: "Browse and edit a remote meme collection",
	Long: `memedir lists, creates and edits memes stored behind a JSON REST API.
It serves a small web UI (table and card views) and a CLI over the same service.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		path := cfgFile
		if path == "" {
			if wd, err := os.Getwd(); err == nil {
				path, _ = memedir.FindConfig(wd)
			}
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			fatal("Error loading config", err)
		}

		if adapter != "" {
			cfg.Gateway.Adapter = adapter
		}
		if endpoint != "" {
			cfg.Gateway.Endpoint = endpoint
		}

		level, _ := config.ParseLevel(cfg.Log.Level)
		if verbose {
			level = slog.LevelDebug
		}
		logLevel.Set(level)
		slog.SetDefault(newLogger(os.Stderr, cfg.Log.Format))

		if path != "" {
			slog.Debug("config loaded", "path", path)
		}
	},
}

func newLogger(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newService builds the service from the loaded config and flags.
func newService() *core.Service {
	svc, err := memedir.New(cfg.Gateway.Endpoint,
		memedir.WithAdapter(cfg.Gateway.Adapter),
		memedir.WithTimeout(cfg.Gateway.Timeout),
		memedir.WithRateLimit(cfg.Gateway.RateLimit),
		memedir.WithReadOnly(cfg.Gateway.ReadOnly),
		memedir.WithFixture(cfg.Gateway.Fixture),
		memedir.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("Error initializing memedir", err)
	}
	return svc
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: memedir.yaml found upwards)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Gateway adapter (rest, memory)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "REST collection endpoint")
}
