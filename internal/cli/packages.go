package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmoss/sprout/internal/packs"
)

// newPackagesCmd creates the packages command.
func newPackagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Rank catalog packages against a concentrate requirement",
		Long: "Rank every package in the product catalog by cost per delivered " +
			"fluid ounce for a given concentrate requirement, cheapest effective option first.",
		RunE: runPackages,
	}

	cmd.Flags().Float64("required", 0, "required concentrate in fluid ounces")
	cmd.Flags().StringP("output", "o", "table", "output format (table, json)")

	_ = cmd.MarkFlagRequired("required")

	return cmd
}

func runPackages(cmd *cobra.Command, _ []string) error {
	required, _ := cmd.Flags().GetFloat64("required")
	if required <= 0 {
		return errors.New("required concentrate must be a positive number of fluid ounces")
	}

	product, err := loadProduct(cmd)
	if err != nil {
		return err
	}

	recs, err := packs.Recommend(required, product.PackageSizes)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "catalog has no packages")
		return nil
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(recs)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderRecommendations(recs, product.Currency))
	return nil
}
