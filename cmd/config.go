package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojocards/internal/logging"
	"github.com/abhisek/dojocards/internal/store"
)

const (
	envDB    = "DOJOCARDS_DB"
	envDecks = "DOJOCARDS_DECKS"
	envBelt  = "DOJOCARDS_BELT"

	defaultBelt  = "gokyu"
	defaultDecks = "."
	logFileName  = "dojocards.log"
)

// config is the resolved command configuration.
type config struct {
	DBPath   string
	Decks    string
	Belt     string
	Enable   []string
	Seed     uint64
	LogLevel string
	LogFile  string
}

// resolveConfig reads persistent flags, falling back to environment variables
// and then defaults.
func resolveConfig(cmd *cobra.Command) (config, error) {
	flags := cmd.Flags()
	var cfg config

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return cfg, fmt.Errorf("resolve DB path: %w", err)
	}
	cfg.DBPath = dbPath

	cfg.Decks = flagOrEnv(cmd, "decks", envDecks, defaultDecks)
	cfg.Belt = flagOrEnv(cmd, "belt", envBelt, defaultBelt)
	cfg.Enable, _ = flags.GetStringSlice("enable")
	cfg.Seed, _ = flags.GetUint64("seed")
	cfg.LogLevel, _ = flags.GetString("log-level")
	cfg.LogFile, _ = flags.GetString("log-file")
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DOJOCARDS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func flagOrEnv(cmd *cobra.Command, flag, env, def string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// openLogger builds the command logger. With tui set, logs go to a file so
// they do not corrupt the screen; otherwise they go to stderr and default to
// warnings only. The returned close func releases the log file.
func openLogger(cfg config, tui bool) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, noop, err
	}

	path := cfg.LogFile
	if path == "" && tui {
		path = filepath.Join(filepath.Dir(cfg.DBPath), logFileName)
	}
	if path == "" {
		if cfg.LogLevel == "" {
			level = slog.LevelWarn
		}
		return logging.New(os.Stderr, level), noop, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, level), f.Close, nil
}
