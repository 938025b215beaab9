package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojocards/internal/deck"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget saved deck positions for the current belt",
	Long: "Clears the saved card order and position of the current belt's decks so the next " +
		"drill starts with a fresh weakest-first shuffle. With --history, also forgets every " +
		"recorded answer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		belt, err := rt.catalog.Belt(rt.cfg.Belt)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if catFlag, _ := cmd.Flags().GetString("category"); catFlag != "" {
			c, err := deck.ParseCategory(catFlag)
			if err != nil {
				return err
			}
			rt.sessions.Clear(ctx, belt.ID, c)
			fmt.Fprintf(out, "Cleared %s %s session\n", belt.Name, c.DisplayName())
		} else {
			n := rt.sessions.ClearBelt(ctx, belt.ID)
			fmt.Fprintf(out, "Cleared %d %s session(s)\n", n, belt.Name)
		}

		if clearHistory, _ := cmd.Flags().GetBool("history"); clearHistory {
			rt.history.Clear(ctx)
			fmt.Fprintln(out, "Cleared answer history")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().String("category", "", "Only reset this deck: all, recite or perform")
	resetCmd.Flags().Bool("history", false, "Also clear every recorded answer")
}
