package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecairns22/ShellCaptain/internal/gitops"
)

func gitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git",
		Short: "Run common git operations",
	}

	clone := &cobra.Command{
		Use:   "clone <url> <dest>",
		Short: "Clone a repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := gitops.New(app.exec, app.stream)
			return mgr.Clone(cmd.Context(), args[0], args[1])
		},
	}

	pull := &cobra.Command{
		Use:   "pull <dir>",
		Short: "Pull the current branch in a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := gitops.New(app.exec, app.stream)
			return mgr.Pull(cmd.Context(), args[0])
		},
	}

	checkout := &cobra.Command{
		Use:   "checkout <dir> <ref>",
		Short: "Check out a branch or commit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := gitops.New(app.exec, app.stream)
			return mgr.Checkout(cmd.Context(), args[0], args[1])
		},
	}

	branch := &cobra.Command{
		Use:   "branch <dir>",
		Short: "Print the current branch of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := gitops.New(app.exec, app.capture)
			name, err := mgr.CurrentBranch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	head := &cobra.Command{
		Use:   "head <dir>",
		Short: "Print the commit hash at HEAD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := gitops.New(app.exec, app.capture)
			hash, err := mgr.HeadCommit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.AddCommand(clone, pull, checkout, branch, head)
	return cmd
}
