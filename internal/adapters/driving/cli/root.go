package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spectrail-labs/spectrail-cli/internal/adapters/driven/config/file"
	"github.com/spectrail-labs/spectrail-cli/internal/adapters/driven/storage/sqlite"
	"github.com/spectrail-labs/spectrail-cli/internal/connectors/figma"
	"github.com/spectrail-labs/spectrail-cli/internal/core/ports/driven"
	"github.com/spectrail-labs/spectrail-cli/internal/core/ports/driving"
	"github.com/spectrail-labs/spectrail-cli/internal/core/services"
	"github.com/spectrail-labs/spectrail-cli/internal/logger"
)

// version is the CLI version, overridden at build time via ldflags.
var version = "dev"

// Services used by the commands. Commands initialise what they need on
// first use through the ensure helpers below; tests inject fakes
// directly into these variables instead.
var (
	trackerService driving.Tracker
	specStore      driven.SpecStore
	configStore    driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "spectrail",
	Short: "Track design node changes from the command line",
	Long: `Spectrail tracks remote design nodes referenced by local source files.
It fetches the referenced nodes, normalises them into stable specs and
reports what was added, changed or removed since the last run.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ensureConfigStore opens the TOML config store on first use.
func ensureConfigStore() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}

	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config store: %w", err)
	}
	configStore = store
	return configStore, nil
}

// ensureSpecStore opens the SQLite-backed spec store on first use.
func ensureSpecStore() (driven.SpecStore, error) {
	if specStore != nil {
		return specStore, nil
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return nil, fmt.Errorf("opening spec store: %w", err)
	}
	specStore = store.SpecStore()
	return specStore, nil
}

// ensureTracker builds the tracking service on first use. token and
// concurrency come from command flags and may be zero, in which case
// the config store and connector defaults apply.
func ensureTracker(token string, concurrency int) (driving.Tracker, error) {
	if trackerService != nil {
		return trackerService, nil
	}

	cfg, err := ensureConfigStore()
	if err != nil {
		return nil, err
	}
	store, err := ensureSpecStore()
	if err != nil {
		return nil, err
	}

	resolved := resolveToken(token, cfg)
	if resolved == "" {
		return nil, errors.New("no Figma token configured: pass --token, set FIGMA_TOKEN or run 'spectrail config set-token'")
	}
	if concurrency == 0 {
		concurrency = cfg.GetInt("figma.concurrency")
	}

	client, err := figma.NewClient(figma.Config{
		Token:       resolved,
		Concurrency: concurrency,
	})
	if err != nil {
		return nil, err
	}

	trackerService = services.NewTrackerService(client, store)
	return trackerService, nil
}

// resolveToken applies the token precedence: flag, then environment,
// then config store.
func resolveToken(flagToken string, cfg driven.ConfigStore) string {
	if flagToken != "" {
		return flagToken
	}
	if env := os.Getenv("FIGMA_TOKEN"); env != "" {
		return env
	}
	return cfg.GetString("figma.token")
}
