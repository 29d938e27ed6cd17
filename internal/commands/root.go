package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "spendtrack",
		Short:   "Card statement ingestion and spending reports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dir, "dir", ".", "project directory")

	rootCmd.AddCommand(newInitCommand(&dir))
	rootCmd.AddCommand(newUserCommand(&dir))
	rootCmd.AddCommand(newIngestCommand(&dir))
	rootCmd.AddCommand(newReportCommand(&dir))
	rootCmd.AddCommand(newWatchCommand(&dir))

	return rootCmd
}
