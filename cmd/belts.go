package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojocards/internal/deck"
)

var beltsCmd = &cobra.Command{
	Use:   "belts",
	Short: "List belts and deck progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprint(tw, "BELT\tNAME\tCOLOR\tSTATUS")
		for _, c := range deck.Categories {
			fmt.Fprintf(tw, "\t%s", c.DisplayName())
		}
		fmt.Fprintln(tw)

		for _, b := range rt.catalog.Belts() {
			status := "coming soon"
			if b.Enabled {
				status = "available"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s", b.ID, b.Name, b.Color, status)
			for _, c := range deck.Categories {
				fmt.Fprintf(tw, "\t%s", formatPercent(rt.sessions.Percent(ctx, b.ID, c)))
			}
			fmt.Fprintln(tw)
		}
		return tw.Flush()
	},
}

func formatPercent(p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", int(p*100))
}
