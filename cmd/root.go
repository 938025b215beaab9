package cmd

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dojocards",
	Short: "Judo syllabus flashcards",
	Long: "Dojo Cards: terminal flashcard drills for judo belt syllabi. Weak cards come first, " +
		"and unfinished decks resume where you left off.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides "+envDB+" env var)")
	pf.String("decks", "", "Directory or http(s) URL holding the study/ decks (overrides "+envDecks+", default \".\")")
	pf.String("belt", "", "Belt to study (overrides "+envBelt+", default "+defaultBelt+")")
	pf.StringSlice("enable", nil, "Also enable these belts, e.g. --enable yonkyu,sankyu (their decks must exist)")
	pf.Uint64("seed", 0, "Shuffle seed; 0 picks a random seed")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Write logs to this file (the TUI defaults to dojocards.log next to the database)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(beltsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads a .env file from the working directory if one exists.
// Values already in the environment win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
