package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kmoss/sprout/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and scaffold product catalog files",
	}

	cmd.AddCommand(newConfigValidateCmd(), newConfigInitCmd())

	return cmd
}

// newConfigValidateCmd creates the config validate command.
func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a product catalog file",
		Long: "Validate the catalog named by --product, reporting every error " +
			"and warning rather than stopping at the first.",
		RunE: runConfigValidate,
	}
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("product")

	var product config.ProductConfig
	if path == "" {
		product = config.Default()
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read catalog: %w", err)
		}
		// Decode without the load-time validation so every issue is
		// reported below instead of failing fast.
		if unmarshalErr := yaml.Unmarshal(data, &product); unmarshalErr != nil {
			return fmt.Errorf("failed to parse catalog: %w", unmarshalErr)
		}
	}

	result := config.Validate(&product)

	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s: %s\n", warning.Field, warning.Message)
	}
	for _, issue := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %s\n", issue.Field, issue.Message)
	}

	if !result.Valid {
		return fmt.Errorf("catalog has %d error(s)", len(result.Errors))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "catalog is valid")
	return nil
}

// newConfigInitCmd creates the config init command.
func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in catalog to a file as a starting point",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}

	cmd.Flags().Bool("force", false, "overwrite an existing file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "sprout.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if writeErr := os.WriteFile(path, data, 0644); writeErr != nil { //nolint:gosec // catalog files are not secrets
		return fmt.Errorf("failed to write catalog: %w", writeErr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
