package cmd

import (
	"github.com/abhisek/kanaflash/internal/config"
	"github.com/abhisek/kanaflash/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kanaflash",
	Short: "Kana and kanji flashcards for the terminal",
	Long:  "Kanaflash is a terminal flashcard app for hiragana, katakana and JLPT kanji.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, launch{})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KANAFLASH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/kanaflash/config.toml)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfigPath returns the --config flag or the default XDG path.
func resolveConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (file or KANAFLASH_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
