package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojocards/internal/deck"
	"github.com/abhisek/dojocards/internal/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-card answer statistics, weakest first",
	Long: "Lists every answered card with its correct and wrong counts over the last " +
		"answers. With --category, lists the cards of that deck of the current belt instead, " +
		"including ones never answered.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		var entries []history.Entry

		catFlag, _ := cmd.Flags().GetString("category")
		if catFlag == "" {
			entries = history.Ranked(rt.history.All(ctx))
		} else {
			category, err := deck.ParseCategory(catFlag)
			if err != nil {
				return err
			}
			belt, err := rt.belt()
			if err != nil {
				return err
			}
			cards, err := rt.builder.Cards(ctx, belt, category)
			if err != nil {
				return err
			}
			all := make(map[string]history.Stats, len(cards))
			for _, c := range cards {
				all[c.Front] = history.Stats{Correct: c.Correct, Wrong: c.Wrong}
			}
			entries = history.Ranked(all)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No answers recorded yet.")
			return nil
		}
		return writeStats(out, entries, func(front string) []bool {
			return rt.history.History(ctx, front)
		})
	},
}

func init() {
	statsCmd.Flags().String("category", "", "Limit to one deck of the current belt: all, recite or perform")
}

func writeStats(w io.Writer, entries []history.Entry, recent func(string) []bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CARD\tCORRECT\tWRONG\tWEAKNESS\tRECENT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%+d\t%s\n", e.Front, e.Correct, e.Wrong, e.Score(), formatRecent(recent(e.Front)))
	}
	return tw.Flush()
}

// formatRecent renders outcomes oldest first, o for correct and x for wrong.
func formatRecent(outcomes []bool) string {
	if len(outcomes) == 0 {
		return "-"
	}
	var b strings.Builder
	for _, ok := range outcomes {
		if ok {
			b.WriteByte('o')
		} else {
			b.WriteByte('x')
		}
	}
	return b.String()
}
