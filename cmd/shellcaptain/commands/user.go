package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecairns22/ShellCaptain/internal/userops"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage system users",
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Print the current user name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := userops.New(app.exec, app.capture, app.cfg.Exec.EscalateTool)
			name, err := mgr.Current(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	var (
		system     bool
		createHome bool
		shell      string
	)
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a system user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := userops.New(app.exec, app.capture, app.cfg.Exec.EscalateTool)
			return mgr.Add(cmd.Context(), args[0], userops.AddOptions{
				System:     system,
				CreateHome: createHome,
				Shell:      shell,
			})
		},
	}
	add.Flags().BoolVar(&system, "system", false, "create a system account")
	add.Flags().BoolVar(&createHome, "create-home", false, "create a home directory")
	add.Flags().StringVar(&shell, "shell", "", "login shell for the new user")

	var removeHome bool
	del := &cobra.Command{
		Use:   "del <name>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := userops.New(app.exec, app.capture, app.cfg.Exec.EscalateTool)
			return mgr.Remove(cmd.Context(), args[0], removeHome)
		},
	}
	del.Flags().BoolVar(&removeHome, "remove-home", false, "also remove the home directory")

	groups := &cobra.Command{
		Use:   "groups <name>",
		Short: "List the groups a user belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := userops.New(app.exec, app.capture, app.cfg.Exec.EscalateTool)
			names, err := mgr.Groups(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
			return nil
		},
	}

	exists := &cobra.Command{
		Use:   "exists <name>",
		Short: "Report whether a user exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := userops.New(app.exec, app.capture, app.cfg.Exec.EscalateTool)
			fmt.Fprintln(cmd.OutOrStdout(), mgr.Exists(cmd.Context(), args[0]))
			return nil
		},
	}

	cmd.AddCommand(whoami, add, del, groups, exists)
	return cmd
}
