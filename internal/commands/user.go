package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserCreateCommand(dir))
	cmd.AddCommand(newUserDeleteCommand(dir))
	return cmd
}

func newUserCreateCommand(dir *string) *cobra.Command {
	var password string
	var firstname string
	var surname string
	var currency string

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			u, err := a.users.Create(args[0], password)
			if err != nil {
				return err
			}
			if firstname != "" || surname != "" {
				if err := a.users.CompleteSetup(u, firstname, surname, currency); err != nil {
					return err
				}
			}
			if err := a.folders.EnsureUser(u.Username); err != nil {
				return err
			}

			fmt.Printf("Created account %s\n", u.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password (required)")
	_ = cmd.MarkFlagRequired("password")
	cmd.Flags().StringVar(&firstname, "firstname", "", "first name")
	cmd.Flags().StringVar(&surname, "surname", "", "surname")
	cmd.Flags().StringVar(&currency, "currency", "USD", "currency acronym, e.g. USD")

	return cmd
}

func newUserDeleteCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an account and all its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.users.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted account %s\n", args[0])
			return nil
		},
	}
}
