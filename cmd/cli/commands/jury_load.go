package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/festival-jury/pkg/core/services"
)

// JuryLoadCmd creates the juryLoad command
func JuryLoadCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "juryLoad",
		Short: "Show how many saved assignments each jury member holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := services.JuryLoad(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(stats.Loads) == 0 {
				fmt.Fprintln(out, "No jury members and no assignments.")
				return nil
			}

			fmt.Fprintf(out, "\nJury load (limit %d)\n\n", app.Cfg.MaxFilmsPerJury)
			printLoads(out, stats, app.Cfg.MaxFilmsPerJury)
			fmt.Fprintln(out)
			return nil
		},
	}
}
