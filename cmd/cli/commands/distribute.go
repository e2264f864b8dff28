package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/festival-jury/pkg/core/services"
)

type distributionView struct {
	RunID       string                `json:"runId"`
	Committed   bool                  `json:"committed"`
	Assignments []assignmentView      `json:"assignments"`
	Loads       []loadView            `json:"loads"`
	Stats       distributionStatsView `json:"stats"`
}

type assignmentView struct {
	FilmID int64  `json:"filmId"`
	Title  string `json:"title"`
	JuryID int64  `json:"juryId"`
}

type loadView struct {
	JuryID int64  `json:"juryId"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

type distributionStatsView struct {
	Total       int     `json:"total"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`
	Avg         float64 `json:"avg"`
	TotalNeeded int     `json:"totalNeeded"`
	MaxCapacity int     `json:"maxCapacity"`
}

// PreviewDistributionCmd creates the previewDistribution command
func PreviewDistributionCmd(app *AppContext) *cobra.Command {
	var limits limitFlags
	var format string

	cmd := &cobra.Command{
		Use:   "previewDistribution",
		Short: "Compute a distribution of films to jury members without saving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistribution(cmd, app, &limits, format, true)
		},
	}

	limits.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

// DistributeCmd creates the distribute command
func DistributeCmd(app *AppContext) *cobra.Command {
	var limits limitFlags
	var format string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Compute a distribution and replace the assignment table with it",
		Long: `Computes a fresh distribution of eligible films across jury members and replaces
the whole assignment table with it in a single transaction. Existing ratings count
toward each film's coverage; previously saved assignments do not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistribution(cmd, app, &limits, format, dryRun)
		},
	}

	limits.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the distribution without saving it")

	return cmd
}

func runDistribution(cmd *cobra.Command, app *AppContext, limits *limitFlags, format string, dryRun bool) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	params := limits.params(cmd, app.Cfg)
	app.Logger.Debug("distribution command",
		zap.Bool("dry_run", dryRun),
		zap.Int("min_ratings", params.Limits.MinRatingsPerFilm),
		zap.Int("max_per_jury", params.Limits.MaxFilmsPerJury))

	result, err := services.DistributeAssignments(app.Ctx, app.Database, params, app.Logger, app.Metrics, dryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, newDistributionView(result))
	}

	printDistribution(out, result, params.Limits.MaxFilmsPerJury)
	return nil
}

func newDistributionView(result *services.DistributeResult) distributionView {
	view := distributionView{
		RunID:       result.RunID,
		Committed:   result.Committed,
		Assignments: make([]assignmentView, len(result.Result.Assignments)),
		Loads:       make([]loadView, len(result.Result.Stats.Loads)),
		Stats: distributionStatsView{
			Total:       result.Result.Stats.Total,
			Min:         result.Result.Stats.Min,
			Max:         result.Result.Stats.Max,
			Avg:         result.Result.Stats.Avg,
			TotalNeeded: result.Result.Feasibility.TotalNeeded,
			MaxCapacity: result.Result.Feasibility.MaxCapacity,
		},
	}

	for i, a := range result.Result.Assignments {
		view.Assignments[i] = assignmentView{FilmID: a.FilmID, Title: result.Title(a.FilmID), JuryID: a.JuryID}
	}
	for i, l := range result.Result.Stats.Loads {
		view.Loads[i] = loadView{JuryID: l.JuryID, Name: l.Name, Count: l.Count}
	}

	return view
}

func printDistribution(w io.Writer, result *services.DistributeResult, limit int) {
	if result.Committed {
		fmt.Fprintf(w, "\n✓ Assignment table replaced (run %s)\n\n", result.RunID)
	} else {
		fmt.Fprintf(w, "\nPreview only, nothing saved (run %s)\n\n", result.RunID)
	}

	printFeasibility(w, result.Result.Feasibility)
	fmt.Fprintln(w)

	if len(result.Result.Assignments) == 0 {
		fmt.Fprintln(w, "Every eligible film already has enough ratings. No assignments needed.")
		return
	}

	// Group jury IDs per film, keeping allocation order
	var filmOrder []int64
	byFilm := make(map[int64][]string)
	for _, a := range result.Result.Assignments {
		if _, ok := byFilm[a.FilmID]; !ok {
			filmOrder = append(filmOrder, a.FilmID)
		}
		byFilm[a.FilmID] = append(byFilm[a.FilmID], strconv.FormatInt(a.JuryID, 10))
	}

	fmt.Fprintln(w, "Assignments:")
	for _, filmID := range filmOrder {
		fmt.Fprintf(w, "  %-6d %-30s -> %s\n", filmID, result.Title(filmID), strings.Join(byFilm[filmID], ", "))
	}
	fmt.Fprintln(w)

	printLoads(w, result.Result.Stats, limit)
	fmt.Fprintln(w)
}
