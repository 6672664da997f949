package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecairns22/ShellCaptain/internal/pkgmgr"
)

func pkgCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "pkg",
		Short: "Manage system packages",
	}
	cmd.PersistentFlags().StringVar(&tool, "tool", "", "package manager to use instead of auto-detection")

	manager := func(cmd *cobra.Command, app *app) (*pkgmgr.Manager, error) {
		escalate := app.cfg.Exec.EscalateTool
		if tool != "" {
			return pkgmgr.NewWithTool(app.exec, app.stream, tool, escalate)
		}
		return pkgmgr.Detect(cmd.Context(), app.exec, app.stream, escalate)
	}

	install := &cobra.Command{
		Use:   "install <package>...",
		Short: "Install packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr, err := manager(cmd, app)
			if err != nil {
				return err
			}
			return mgr.Install(cmd.Context(), args...)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <package>...",
		Short: "Remove packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr, err := manager(cmd, app)
			if err != nil {
				return err
			}
			return mgr.Remove(cmd.Context(), args...)
		},
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Update all installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr, err := manager(cmd, app)
			if err != nil {
				return err
			}
			return mgr.Update(cmd.Context())
		},
	}

	detect := &cobra.Command{
		Use:   "detect",
		Short: "Report which package manager is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr, err := pkgmgr.Detect(cmd.Context(), app.exec, app.stream, "")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mgr.Name())
			return nil
		},
	}

	cmd.AddCommand(install, remove, update, detect)
	return cmd
}
