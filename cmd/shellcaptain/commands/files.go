package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecairns22/ShellCaptain/internal/fileops"
	"github.com/ecairns22/ShellCaptain/internal/pathutil"
)

func cpCmd() *cobra.Command {
	var (
		recursive bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "cp <src> <dst>",
		Short: "Copy a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			ops := fileops.New(app.exec, app.capture)
			return ops.Copy(cmd.Context(), args[0], args[1], fileops.CopyOptions{
				Recursive: recursive,
				Force:     force,
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "copy directories recursively")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	return cmd
}

func mvCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "mv <src> <dst>",
		Short: "Move or rename a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			ops := fileops.New(app.exec, app.capture)
			return ops.Move(cmd.Context(), args[0], args[1], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite the destination")
	return cmd
}

func mkdirCmd() *cobra.Command {
	var parents bool

	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			ops := fileops.New(app.exec, app.capture)
			return ops.Mkdir(cmd.Context(), args[0], parents)
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create parent directories as needed")
	return cmd
}

func rmCmd() *cobra.Command {
	var (
		recursive bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			ops := fileops.New(app.exec, app.capture)
			return ops.Remove(cmd.Context(), args[0], fileops.RemoveOptions{
				Recursive: recursive,
				Force:     force,
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "remove directories recursively")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "ignore missing files")
	return cmd
}

func findCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <root> <pattern>",
		Short: "Find files matching a name pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			ops := fileops.New(app.exec, app.capture)
			matches, err := ops.Find(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			for _, m := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
	return cmd
}

func grepCmd() *cobra.Command {
	var (
		recursive  bool
		ignoreCase bool
	)

	cmd := &cobra.Command{
		Use:   "grep <pattern> <path>",
		Short: "Search file contents for a pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			ops := fileops.New(app.exec, app.capture)
			lines, err := ops.Grep(cmd.Context(), args[0], args[1], fileops.GrepOptions{
				Recursive:  recursive,
				IgnoreCase: ignoreCase,
			})
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "search directories recursively")
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "match case-insensitively")
	return cmd
}

func whichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "which <name>",
		Short: "Locate a binary on the PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			path, err := pathutil.Which(cmd.Context(), app.exec, app.capture, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	return cmd
}
