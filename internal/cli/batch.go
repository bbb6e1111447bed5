package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/estimator"
	"github.com/kmoss/sprout/internal/units"
)

// batchScenario is one named input set in a batch file.
type batchScenario struct {
	Name     string  `yaml:"name"`
	Area     float64 `yaml:"area"`
	AreaUnit string  `yaml:"area_unit"`
	WeedSize string  `yaml:"weed_size"`
	Rate     float64 `yaml:"rate"`
	RateUnit string  `yaml:"rate_unit"`
	System   string  `yaml:"system"`
}

// batchFile is the YAML document the batch command consumes.
type batchFile struct {
	Scenarios []batchScenario `yaml:"scenarios"`
}

// batchOutcome pairs a scenario with its result or failure.
type batchOutcome struct {
	Name   string            `json:"name"`
	Result *estimator.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// newBatchCmd creates the batch command.
func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run many estimate scenarios from a YAML file",
		Long: "Run every scenario in a YAML file concurrently and report each " +
			"result in file order. Scenario failures are reported per scenario; " +
			"the command fails if any scenario fails.",
		RunE: runBatch,
	}

	cmd.Flags().StringP("file", "f", "", "scenario YAML file")
	cmd.Flags().StringP("output", "o", "table", "output format (table, json)")
	cmd.Flags().Int("concurrency", runtime.NumCPU(), "maximum scenarios evaluated at once")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runBatch(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency < 1 {
		concurrency = 1
	}

	scenarios, err := loadScenarios(path)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios in %s", path)
	}

	product, err := loadProduct(cmd)
	if err != nil {
		return err
	}
	engine := estimator.New(product)

	// Outcomes are written by index so output order matches file order
	// regardless of completion order.
	outcomes := make([]batchOutcome, len(scenarios))

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(concurrency)

	for i, scenario := range scenarios {
		group.Go(func() error {
			outcome := batchOutcome{Name: scenario.Name}

			inputs, parseErr := scenario.toInputs()
			if parseErr != nil {
				outcome.Error = parseErr.Error()
				outcomes[i] = outcome
				return nil
			}

			result, calcErr := engine.Calculate(ctx, inputs)
			if calcErr != nil {
				outcome.Error = calcErr.Error()
			} else {
				outcome.Result = result
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if waitErr := group.Wait(); waitErr != nil {
		return waitErr
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if encodeErr := encoder.Encode(outcomes); encodeErr != nil {
			return encodeErr
		}
	} else {
		renderBatchOutcomes(cmd, outcomes, product.Currency)
	}

	failures := 0
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failures, len(outcomes))
	}

	return nil
}

// loadScenarios reads and decodes a batch file.
func loadScenarios(path string) ([]batchScenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var file batchFile
	if unmarshalErr := yaml.Unmarshal(data, &file); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", unmarshalErr)
	}

	for i, scenario := range file.Scenarios {
		if scenario.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i+1)
		}
	}

	return file.Scenarios, nil
}

// toInputs converts a scenario row into an engine input set, filling
// unset fields from the imperial defaults.
func (s batchScenario) toInputs() (dosage.Inputs, error) {
	system := units.Imperial
	if s.System != "" {
		parsed, err := units.ParseSystem(s.System)
		if err != nil {
			return dosage.Inputs{}, err
		}
		system = parsed
	}

	inputs := dosage.DefaultInputs(system)
	inputs.Area = s.Area
	inputs.ApplicationRate = s.Rate

	if s.AreaUnit != "" {
		unit, err := units.ParseAreaUnit(s.AreaUnit)
		if err != nil {
			return dosage.Inputs{}, err
		}
		inputs.AreaUnit = unit
	}
	if s.WeedSize != "" {
		size, err := dosage.ParseWeedSize(s.WeedSize)
		if err != nil {
			return dosage.Inputs{}, err
		}
		inputs.WeedSize = size
	}
	if s.RateUnit != "" {
		unit, err := units.ParseVolumeUnit(s.RateUnit)
		if err != nil {
			return dosage.Inputs{}, err
		}
		inputs.ApplicationUnit = unit
	}

	return inputs, nil
}

// renderBatchOutcomes prints a one-line summary per scenario in file
// order, with failures going to stderr.
func renderBatchOutcomes(cmd *cobra.Command, outcomes []batchOutcome, currency string) {
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%-20s FAILED: %s\n", outcome.Name, outcome.Error)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s concentrate %-14s mix %-12s cost %s\n",
			outcome.Name,
			outcome.Result.RequiredConcentrate.Formatted,
			outcome.Result.TotalMixture.Formatted,
			units.FormatCurrency(outcome.Result.EstimatedCost, currency))
	}
}
