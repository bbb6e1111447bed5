package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/estimator"
	"github.com/kmoss/sprout/internal/store"
	"github.com/kmoss/sprout/internal/tui"
	"github.com/kmoss/sprout/internal/units"
)

// newEstimateCmd creates the estimate command.
func newEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Calculate concentrate, mixture, and package recommendations",
		Long: "Calculate the herbicide concentrate and total spray mixture for a " +
			"treatment area, with the cheapest package combination from the product catalog.\n\n" +
			"Flags you omit are filled from the last run's remembered inputs " +
			"(unless --no-remember is set), then from the catalog defaults.",
		RunE: runEstimate,
	}

	cmd.Flags().Float64("area", 0, "treatment area to cover")
	cmd.Flags().String("area-unit", "", "area unit (square-feet, square-meters, acres, hectares)")
	cmd.Flags().String("weed-size", "", "weed size category (small, medium, large, extra-large)")
	cmd.Flags().Float64("rate", 0, "application rate per 1,000 sq ft")
	cmd.Flags().String("rate-unit", "", "application rate unit (fluid-ounces, milliliters)")
	cmd.Flags().String("system", "", "unit system (imperial, metric)")
	cmd.Flags().StringP("output", "o", "table", "output format (table, json)")
	cmd.Flags().BoolP("interactive", "i", false, "run the interactive estimator")

	return cmd
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	product, err := loadProduct(cmd)
	if err != nil {
		return err
	}
	engine := estimator.New(product)

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		if !isTerminal(os.Stdout) {
			return errors.New("interactive mode requires a terminal")
		}
		return tui.Run(cmd.Context(), engine)
	}

	inputs, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	result, err := engine.Calculate(cmd.Context(), inputs)
	if err != nil {
		var invalid *estimator.InvalidInputsError
		if errors.As(err, &invalid) {
			for _, msg := range invalid.Result.Messages() {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", msg)
			}
			return errors.New("inputs failed validation")
		}
		return err
	}

	rememberInputs(cmd, inputs)

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderResult(result))
	return nil
}

// resolveInputs builds the input set for a run: catalog defaults, then
// remembered inputs (if enabled and fresh), then explicit flags on top.
func resolveInputs(cmd *cobra.Command) (dosage.Inputs, error) {
	overrides, err := collectOverrides(cmd)
	if err != nil {
		return dosage.Inputs{}, err
	}

	system := units.Imperial
	if overrides.UnitSystem != nil {
		system = *overrides.UnitSystem
	}
	base := dosage.DefaultInputs(system)

	noRemember, _ := cmd.Flags().GetBool("no-remember")
	if !noRemember {
		if st, storeErr := store.NewFileStore(store.DefaultDirectory(), 0); storeErr == nil {
			if stored, loadErr := st.Load(); loadErr == nil {
				base = stored
			} else if !errors.Is(loadErr, store.ErrNotFound) && !errors.Is(loadErr, store.ErrExpired) {
				logger.Warn().Err(loadErr).Msg("failed to load remembered inputs")
			}
		}
	}

	return store.Merge(base, overrides), nil
}

// collectOverrides captures only the flags the user actually set, so
// merging can tell "flag left at default" from "flag set to the default".
func collectOverrides(cmd *cobra.Command) (store.Overrides, error) {
	var o store.Overrides
	flags := cmd.Flags()

	if flags.Changed("area") {
		v, _ := flags.GetFloat64("area")
		o.Area = &v
	}
	if flags.Changed("area-unit") {
		raw, _ := flags.GetString("area-unit")
		u, err := units.ParseAreaUnit(raw)
		if err != nil {
			return store.Overrides{}, err
		}
		o.AreaUnit = &u
	}
	if flags.Changed("weed-size") {
		raw, _ := flags.GetString("weed-size")
		ws, err := dosage.ParseWeedSize(raw)
		if err != nil {
			return store.Overrides{}, err
		}
		o.WeedSize = &ws
	}
	if flags.Changed("rate") {
		v, _ := flags.GetFloat64("rate")
		o.ApplicationRate = &v
	}
	if flags.Changed("rate-unit") {
		raw, _ := flags.GetString("rate-unit")
		u, err := units.ParseVolumeUnit(raw)
		if err != nil {
			return store.Overrides{}, err
		}
		o.ApplicationUnit = &u
	}
	if flags.Changed("system") {
		raw, _ := flags.GetString("system")
		s, err := units.ParseSystem(raw)
		if err != nil {
			return store.Overrides{}, err
		}
		o.UnitSystem = &s
	}

	return o, nil
}

// rememberInputs saves the inputs for next time. Failures are logged,
// never fatal: persistence is a convenience, not part of the result.
func rememberInputs(cmd *cobra.Command, in dosage.Inputs) {
	noRemember, _ := cmd.Flags().GetBool("no-remember")
	if noRemember {
		return
	}
	st, err := store.NewFileStore(store.DefaultDirectory(), 0)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to open input store")
		return
	}
	if saveErr := st.Save(in); saveErr != nil {
		logger.Warn().Err(saveErr).Msg("failed to remember inputs")
	}
}
