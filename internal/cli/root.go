// Package cli implements the sprout command line interface.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kmoss/sprout/internal/config"
	"github.com/kmoss/sprout/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the sprout CLI.
// It wires up logging and the estimate, convert, packages, batch, and
// config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sprout",
		Short:   "Herbicide dosage and mixture estimator",
		Long:    "Sprout: calculate herbicide concentrate, spray mixture, and the cheapest package combination for a treatment area",
		Version: ver,
		Example: rootCmdExample,
		// Keep stdout clean on command failures so machine-readable
		// output (e.g. --output json) is not followed by usage text.
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("product", "", "path to a product catalog YAML file (built-in catalog when empty)")
	cmd.PersistentFlags().Bool("no-remember", false, "do not read or write the last-used inputs store")

	cmd.AddCommand(newEstimateCmd(), newConvertCmd(), newPackagesCmd(), newBatchCmd(), newConfigCmd())

	return cmd
}

// setupLogging configures logging from environment and CLI flags and
// attaches the logger to the command context.
func setupLogging(cmd *cobra.Command) {
	cfg := logging.Config{Level: "warn", Format: "console", Output: "stderr"}

	if envLevel := os.Getenv("SPROUT_LOG_LEVEL"); envLevel != "" {
		cfg.Level = envLevel
	}
	if envFormat := os.Getenv("SPROUT_LOG_FORMAT"); envFormat != "" {
		cfg.Format = envFormat
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		cfg.Level = "debug"
		cfg.Format = "console"
	}

	base := logging.New(cfg)
	logger = logging.ComponentLogger(base, "cli")
	cmd.SetContext(logging.WithContext(cmd.Context(), base))

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}

// loadProduct resolves the product catalog from the --product flag,
// falling back to the built-in catalog.
func loadProduct(cmd *cobra.Command) (config.ProductConfig, error) {
	path, _ := cmd.Flags().GetString("product")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

const rootCmdExample = `  # Estimate for 1,000 sq ft of medium weeds at 2 fl oz per 1,000 sq ft
  sprout estimate --area 1000 --weed-size medium --rate 2

  # Same estimate against a custom product catalog, as JSON
  sprout estimate --area 1000 --weed-size medium --rate 2 --product catalog.yaml --output json

  # Interactive estimator
  sprout estimate --interactive

  # Convert between units
  sprout convert --kind area --value 1000 --from square-feet --to square-meters

  # Rank catalog packages against a requirement
  sprout packages --required 96

  # Run many scenarios from a file
  sprout batch --file scenarios.yaml

  # Validate a catalog file
  sprout config validate --product catalog.yaml`
