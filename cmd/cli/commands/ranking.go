package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/festival-jury/pkg/core/ranking"
	"github.com/jakechorley/festival-jury/pkg/core/services"
)

type rankingView struct {
	Rank      int       `json:"rank"`
	FilmID    int64     `json:"filmId"`
	Title     string    `json:"title"`
	Average   *float64  `json:"average"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
}

// RankingCmd creates the ranking command
func RankingCmd(app *AppContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Rank eligible films by average rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			ranked, err := services.RankFilms(app.Ctx, app.Database, app.Cfg.EligibleStatuses, app.Logger, app.Metrics)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, newRankingView(ranked))
			}

			printRanking(out, ranked)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func newRankingView(ranked []ranking.RankedRow) []rankingView {
	view := make([]rankingView, len(ranked))
	for i, r := range ranked {
		view[i] = rankingView{
			Rank:      r.Rank,
			FilmID:    r.FilmID,
			Title:     r.Title,
			Count:     r.Count,
			CreatedAt: r.CreatedAt,
		}
		if r.HasAverage() {
			view[i].Average = r.Average
		}
	}
	return view
}

func printRanking(w io.Writer, ranked []ranking.RankedRow) {
	if len(ranked) == 0 {
		fmt.Fprintln(w, "No eligible films.")
		return
	}

	titles := make([]string, len(ranked))
	for i, r := range ranked {
		titles[i] = r.Title
	}
	titleColWidth := columnWidth(30, titles)

	fmt.Fprintf(w, "\n%-5s %-*s %8s %7s  %s\n", "Rank", titleColWidth, "Title", "Average", "Ratings", "Submitted")
	fmt.Fprintln(w, strings.Repeat("-", 5+1+titleColWidth+1+8+1+7+2+16))

	for _, r := range ranked {
		average := colorDim + "       -" + colorReset
		if r.HasAverage() {
			average = fmt.Sprintf("%8.2f", *r.Average)
		}
		fmt.Fprintf(w, "%-5d %-*s %s %7d  %s\n",
			r.Rank, titleColWidth, r.Title, average, r.Count, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)
}
