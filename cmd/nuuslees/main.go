package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/spf13/cobra"

	"github.com/studiowebux/nuuslees/internal/app"
	"github.com/studiowebux/nuuslees/internal/article"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/feedsync"
	"github.com/studiowebux/nuuslees/internal/storage"
	"github.com/studiowebux/nuuslees/internal/terminal"
	release "github.com/studiowebux/nuuslees/internal/version"
)

var (
	version = "0.1.0"
)

var (
	flagConfig    string
	flagDatabase  string
	flagLogFile   string
	flagDebug     bool
	flagTickRate  float64
	flagFrameRate float64
	flagSync      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nuuslees",
	Short: "nuuslees - terminal RSS reader",
	Long: `nuuslees reads the RSS and Atom feeds declared in ~/.nuuslees/config.yaml.

Run without arguments to start the reader. Feeds are stored in a local SQLite
database so articles stay available offline.

Examples:
  nuuslees                         # Start the reader
  nuuslees --config feeds.yaml     # Use another feed list
  nuuslees --sync                  # Fetch every feed without the UI
  nuuslees --debug                 # Verbose log in ~/.nuuslees/nuuslees.log`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if flagSync {
			setupLog(flagDebug, os.Stderr)
			return runSync(cmd.Context(), cmd.OutOrStdout(), cfg)
		}

		logFile, err := os.OpenFile(pick(flagLogFile, config.LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()
		// the terminal belongs to the UI, so the log goes to the file only
		setupLog(flagDebug, logFile)

		return runTUI(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Config file (default ~/.nuuslees/config.yaml)")
	rootCmd.Flags().StringVar(&flagDatabase, "db", "", "SQLite database (default ~/.nuuslees/nuuslees.db)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&flagSync, "sync", false, "Fetch every feed, print a summary and exit")
	rootCmd.Flags().StringVar(&flagLogFile, "log", "", "Log file (default ~/.nuuslees/nuuslees.log)")
	rootCmd.Flags().Float64Var(&flagTickRate, "tick-rate", 0, "Ticks per second, overrides the config")
	rootCmd.Flags().Float64Var(&flagFrameRate, "frame-rate", 0, "Frames per second, overrides the config")
}

// loadConfig initializes ~/.nuuslees and reads the feed list, applying
// command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load(pick(flagConfig, config.ConfigFile))
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("tick-rate") {
		cfg.TickRate = flagTickRate
	}
	if cmd.Flags().Changed("frame-rate") {
		cfg.FrameRate = flagFrameRate
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	store, err := storage.Open(pick(flagDatabase, config.DatabasePath))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] failed to close database, %v", err)
		}
	}()

	opts := app.Options{
		Version:   version,
		Config:    cfg,
		Terminal:  terminal.New(cfg.TickRate, cfg.FrameRate),
		Store:     store,
		Syncer:    feedsync.New(store, feedsync.NewHTTPFetcher(cfg.FetchTimeout), cfg.FetchConcurrency),
		Extractor: article.NewExtractor(cfg.FetchTimeout),
	}
	if cfg.CheckUpdates {
		opts.Updates = release.NewChecker(release.ReleasesURL)
	}

	log.Printf("[INFO] nuuslees %s starting", version)
	return app.New(opts).Run(ctx)
}

func runSync(ctx context.Context, out io.Writer, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := storage.Open(pick(flagDatabase, config.DatabasePath))
	if err != nil {
		return err
	}
	defer store.Close()

	syncer := feedsync.New(store, feedsync.NewHTTPFetcher(cfg.FetchTimeout), cfg.FetchConcurrency)
	report := syncer.Sync(ctx, cfg.Groups)

	fmt.Fprintf(out, "Synced %d groups, %d feeds, %d articles\n", report.Groups, report.Feeds, report.Items)
	if err := report.Err(); err != nil {
		fmt.Fprintf(out, "%d entries skipped:\n%v\n", report.Failed(), err)
	}
	return nil
}

func setupLog(dbg bool, w io.Writer) {
	if dbg {
		log.Setup(log.Debug, log.CallerFile, log.Msec, log.LevelBraces, log.Out(w), log.Err(w))
		return
	}
	log.Setup(log.Msec, log.LevelBraces, log.Out(w), log.Err(w))
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
