package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pmsuite/pathregistry/internal/boot"
	"github.com/pmsuite/pathregistry/internal/diagnostics"
	"github.com/pmsuite/pathregistry/internal/infrastructure/config"
	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/infrastructure/monitoring"
	"github.com/pmsuite/pathregistry/internal/persist"
	"github.com/pmsuite/pathregistry/internal/registry"
	"github.com/pmsuite/pathregistry/internal/shared/paths"
)

var (
	flagRoot    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "pathsuite",
	Short:        "Path registry for the project management suite",
	Long:         "Resolves, heals and diagnoses the shared path configuration used by the suite's folder generator, document-list builder and dashboard.",
	Version:      config.AppVersion,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "",
		"suite root directory (default: discovered from markers)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"verbose development logging")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// env wires one registry and its collaborators for a command invocation.
type env struct {
	cfg      *config.Config
	log      *logging.Logger
	metrics  *monitoring.Metrics
	reg      *registry.Registry
	booted   boot.Result
	checker  *diagnostics.Checker
	repairer *diagnostics.Repairer
	reporter *diagnostics.Reporter
	store    *persist.Store
}

func newEnv() *env {
	cfg := config.LoadOrDefault()
	if flagRoot != "" {
		cfg.Root = flagRoot
	}
	if flagVerbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		log = logging.NewDefault()
	}

	metrics := monitoring.NewMetrics()
	reg, booted := boot.New(cfg, log, metrics)

	checker := diagnostics.NewChecker(reg, paths.Essential(), log)
	return &env{
		cfg:      cfg,
		log:      log,
		metrics:  metrics,
		reg:      reg,
		booted:   booted,
		checker:  checker,
		repairer: diagnostics.NewRepairer(checker, log),
		reporter: diagnostics.NewReporter(checker, config.AppVersion),
		store: persist.NewStore(reg,
			filepath.Join(booted.Root, persist.SnapshotName), config.AppVersion, log),
	}
}
