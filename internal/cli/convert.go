package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmoss/sprout/internal/units"
)

// newConvertCmd creates the convert command.
func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a value between area or volume units",
		RunE:  runConvert,
	}

	cmd.Flags().String("kind", "area", "measurement kind (area, volume)")
	cmd.Flags().Float64("value", 0, "value to convert")
	cmd.Flags().String("from", "", "source unit")
	cmd.Flags().String("to", "", "target unit")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runConvert(cmd *cobra.Command, _ []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	value, _ := cmd.Flags().GetFloat64("value")
	fromRaw, _ := cmd.Flags().GetString("from")
	toRaw, _ := cmd.Flags().GetString("to")

	switch kind {
	case "area":
		from, err := units.ParseAreaUnit(fromRaw)
		if err != nil {
			return err
		}
		to, err := units.ParseAreaUnit(toRaw)
		if err != nil {
			return err
		}
		converted, err := units.ConvertArea(value, from, to)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n",
			units.FormatArea(value, from), units.FormatArea(converted, to))
	case "volume":
		from, err := units.ParseVolumeUnit(fromRaw)
		if err != nil {
			return err
		}
		to, err := units.ParseVolumeUnit(toRaw)
		if err != nil {
			return err
		}
		converted, err := units.ConvertVolume(value, from, to)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n",
			units.FormatVolume(value, from), units.FormatVolume(converted, to))
	default:
		return fmt.Errorf("unknown measurement kind %q (use area or volume)", kind)
	}

	return nil
}
