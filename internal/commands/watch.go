package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/watcher"
)

func newWatchCommand(dir *string) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the upload folder and import new statements on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			// Fail on an unknown user before the first sweep runs.
			if _, err := a.users.Lookup(username); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watcher.New(a.cfg.Watch.Schedule, func() (bool, error) {
				return sweepAndIngest(a, username)
			}, a.log)
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
