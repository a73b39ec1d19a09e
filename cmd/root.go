package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wondershelf/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wondershelf",
	Short: "A shelf of tiny AI-powered delights",
	Long: "Wonder Shelf: horoscopes, lucky colors, dad jokes, compliments, psych tests,\n" +
		"a decision maker and a ten-step interactive story, in your terminal or over HTTP.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite audit database (overrides WONDERSHELF_DB env var)")
	rootCmd.PersistentFlags().String("locale", "", "Content locale, e.g. vi or en (overrides WONDERSHELF_LOCALE)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (overrides WONDERSHELF_LOG_FILE)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome splash")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then WONDERSHELF_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
