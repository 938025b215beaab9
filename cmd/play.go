package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/dojocards/internal/app"
	"github.com/abhisek/dojocards/internal/screens/home"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a flashcard drill (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	if _, err := rt.belt(); err != nil {
		return err
	}

	return app.Run(app.Options{
		Deps: home.Deps{
			Catalog:  rt.catalog,
			Loader:   rt.loader,
			Progress: rt.sessions,
			Stats:    rt.history,
			Logger:   rt.logger,
		},
		Belt: rt.cfg.Belt,
	})
}
