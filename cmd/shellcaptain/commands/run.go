package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecairns22/ShellCaptain/internal/proc"
)

func runCmd() *cobra.Command {
	var (
		shell    bool
		escalate bool
	)

	cmd := &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Run a command, relaying its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			argv := buildArgv(args, shell, escalate, app.cfg.Exec.EscalateTool)
			return app.exec.Run(cmd.Context(), app.stream, argv)
		},
	}

	cmd.Flags().BoolVar(&shell, "shell", false, "wrap the arguments as a sh -c script")
	cmd.Flags().BoolVar(&escalate, "escalate", false, "prefix the command with the configured escalation tool")
	return cmd
}

func captureCmd() *cobra.Command {
	var (
		shell    bool
		escalate bool
	)

	cmd := &cobra.Command{
		Use:   "capture [flags] -- <command> [args...]",
		Short: "Run a command and print its trimmed stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			argv := buildArgv(args, shell, escalate, app.cfg.Exec.EscalateTool)
			out, err := app.exec.Call(cmd.Context(), app.capture, argv)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&shell, "shell", false, "wrap the arguments as a sh -c script")
	cmd.Flags().BoolVar(&escalate, "escalate", false, "prefix the command with the configured escalation tool")
	return cmd
}

// buildArgv applies the shell and escalation wrappers in that order, so
// the escalation tool stays the first element.
func buildArgv(args []string, shell, escalate bool, tool string) []string {
	argv := args
	if shell {
		argv = proc.ShellCommand(strings.Join(args, " "))
	}
	if escalate && tool != "" {
		argv = append([]string{tool}, argv...)
	}
	return argv
}
