package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codtech/libraryd/internal/id"
	"github.com/codtech/libraryd/pkg/api"
	"github.com/codtech/libraryd/pkg/config"
	"github.com/codtech/libraryd/pkg/events"
	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/logging"
	"github.com/codtech/libraryd/pkg/metrics"
	"github.com/codtech/libraryd/pkg/store"
)

// serveFlags holds the flag overrides for the serve command.
type serveFlags struct {
	address        string
	logLevel       string
	logFormat      string
	idStrategy     string
	strict         bool
	seedFiles      []string
	noDefaultSeed  bool
	maxConnections int
	envFile        string
}

var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the library API server (foreground)",
	Long: `Start the library API server in the foreground.

Settings come from the --config file, then LIBRARYD_ADDRESS and
LIBRARYD_LOG_LEVEL (optionally read from --env-file), then the flags below. The server stops gracefully on
SIGINT or SIGTERM.`,
	Example: `  # Start with defaults on :4280
  libraryd serve

  # Start from a configuration file
  libraryd serve --config libraryd.yaml

  # Reject books whose author or category is not in the catalog
  libraryd serve --strict

  # Load extra records and skip the built-in seed
  libraryd serve --seed 'seeds/**/*.yaml' --no-default-seed`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.StringVarP(&serveFlagVals.address, "address", "a", "", "Listen address (default :4280)")
	f.StringVar(&serveFlagVals.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&serveFlagVals.logFormat, "log-format", "", "Log format: text, json")
	f.StringVar(&serveFlagVals.idStrategy, "id-strategy", "", "Id generator: sequence, uuid")
	f.BoolVar(&serveFlagVals.strict, "strict", false, "Require book authors and categories to exist")
	f.StringSliceVar(&serveFlagVals.seedFiles, "seed", nil, "Glob of YAML seed files to load (repeatable)")
	f.BoolVar(&serveFlagVals.noDefaultSeed, "no-default-seed", false, "Start without the built-in books, authors and categories")
	f.IntVar(&serveFlagVals.maxConnections, "max-connections", 0, "Maximum concurrent connections (0 = unlimited)")
	f.StringVar(&serveFlagVals.envFile, "env-file", "", "Load LIBRARYD_* variables from a dotenv file")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := buildServer(cfg)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

// serveConfig loads --config and applies the flags the user set.
func serveConfig(cmd *cobra.Command) (*config.Config, error) {
	if serveFlagVals.envFile != "" {
		if err := config.LoadEnvFile(serveFlagVals.envFile); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Server.Address = serveFlagVals.address
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = serveFlagVals.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = serveFlagVals.logFormat
	}
	if flags.Changed("id-strategy") {
		cfg.Catalog.IDStrategy = serveFlagVals.idStrategy
	}
	if flags.Changed("strict") {
		cfg.Catalog.StrictReferences = serveFlagVals.strict
	}
	if flags.Changed("seed") {
		// Flag globs resolve against the working directory, not the config file.
		for _, pattern := range serveFlagVals.seedFiles {
			abs, err := absPattern(pattern)
			if err != nil {
				return nil, err
			}
			cfg.Catalog.SeedFiles = append(cfg.Catalog.SeedFiles, abs)
		}
	}
	if flags.Changed("no-default-seed") {
		cfg.Catalog.SeedDefault = !serveFlagVals.noDefaultSeed
	}
	if flags.Changed("max-connections") {
		cfg.Server.MaxConnections = serveFlagVals.maxConnections
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildServer wires the catalog, event hub and metrics into an API server.
func buildServer(cfg *config.Config) (*api.Server, error) {
	log, err := logging.FromStrings(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	seed, files, err := cfg.BuildSeed()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		log.Info("loaded seed file", "path", f)
	}

	hub := events.NewHub(events.DefaultBuffer)
	counters := store.NewMetricsObserver()
	var catalog *library.Catalog
	collector := metrics.NewCollector(metrics.Sources{
		Records:     func() library.Overview { return catalog.Overview() },
		Subscribers: hub.Subscribers,
	})
	catalog, err = library.New(library.Options{
		Seed:       seed,
		IDStrategy: id.Strategy(cfg.Catalog.IDStrategy),
		Observer:   store.Multi(hub, counters, collector),
		Logger:     logging.Component(log, "catalog"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	counts := catalog.Overview()
	log.Info("catalog ready", "books", counts.Books, "authors", counts.Authors, "categories", counts.Categories)

	return api.New(catalog,
		api.WithConfig(api.Config{
			Address:         cfg.Server.Address,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			MaxConnections:  cfg.Server.MaxConnections,
			CORSOrigins:     cfg.Server.CORSOrigins,
		}),
		api.WithLogger(logging.Component(log, "api")),
		api.WithHub(hub),
		api.WithMetrics(counters),
		api.WithCollector(collector),
		api.WithStrictReferences(cfg.Catalog.StrictReferences),
		api.WithVersion(Version),
	)
}

func absPattern(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("empty seed pattern")
	}
	if filepath.IsAbs(pattern) {
		return pattern, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve seed pattern %q: %w", pattern, err)
	}
	return filepath.Join(wd, pattern), nil
}
