package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasnim.dev/cloud-console/internal/userdata"
)

func newUserTypeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user-type",
		Short: "Show or change the simulated account state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.userType)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the effective user type",
		Args:  cobra.NoArgs,
		RunE:  cmd.RunE,
	}

	set := &cobra.Command{
		Use:       "set <new|existing|regular>",
		Short:     "Persist the user type to the user data file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(userdata.UserTypeNew), string(userdata.UserTypeExisting), string(userdata.UserTypeRegular)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !userdata.Valid(args[0]) {
				return fmt.Errorf("invalid user type %q (want new, existing or regular)", args[0])
			}
			path := a.cfg.UserDataPath()
			if err := userdata.Save(path, userdata.UserData{UserType: userdata.UserType(args[0])}); err != nil {
				return err
			}
			a.logger.Info("user type changed", "user_type", args[0], "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "User type set to %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}
