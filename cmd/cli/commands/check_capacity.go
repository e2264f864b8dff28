package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/festival-jury/pkg/core/services"
)

// CheckCapacityCmd creates the checkCapacity command
func CheckCapacityCmd(app *AppContext) *cobra.Command {
	var limits limitFlags

	cmd := &cobra.Command{
		Use:   "checkCapacity",
		Short: "Check whether the jury can cover every eligible film under the current limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.CheckCapacity(app.Ctx, app.Database, limits.params(cmd, app.Cfg), app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			printFeasibility(out, report.Feasibility)
			fmt.Fprintln(out)

			if report.Err != nil {
				fmt.Fprintf(out, "%s✗ %v%s\n\n", colorRed, report.Err, colorReset)
				return report.Err
			}

			fmt.Fprintf(out, "%s✓ Capacity is sufficient (%d spare)%s\n\n",
				colorGreen, report.Feasibility.MaxCapacity-report.Feasibility.TotalNeeded, colorReset)
			return nil
		},
	}

	limits.register(cmd)

	return cmd
}
