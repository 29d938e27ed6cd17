package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/importer"
)

func newIngestCommand(dir *string) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Sweep the upload folder and import new statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			wrote, err := sweepAndIngest(a, username)
			if err != nil {
				return err
			}
			if wrote {
				fmt.Println("New transactions imported")
			} else {
				fmt.Println("Nothing new to import")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// sweepAndIngest is one full import pass: move uploads into the user's
// folder, then feed every CSV there through the store. Re-runs are
// harmless; already-stored rows are skipped.
func sweepAndIngest(a *app, username string) (bool, error) {
	u, err := a.users.Lookup(username)
	if err != nil {
		return false, err
	}

	if _, err := a.folders.Sweep(u.Username); err != nil {
		return false, err
	}

	files, err := importer.Scan(a.folders.UserDir(u.Username), ".csv")
	if err != nil {
		return false, err
	}
	return a.store.Ingest(files, u.ID)
}
