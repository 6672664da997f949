package commands

import (
	"github.com/spf13/cobra"
)

// Root returns the root cobra command with all subcommands attached.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shellcaptain",
		Short: "Run system commands through one typed execution core",
		Long: "ShellCaptain fronts the usual system tools (file utilities, package managers,\n" +
			"git, user accounts) through a single process-execution core with typed\n" +
			"failures and an invocation history.",
	}

	cmd.AddCommand(initCmd())
	cmd.AddCommand(runCmd())
	cmd.AddCommand(captureCmd())
	cmd.AddCommand(cpCmd())
	cmd.AddCommand(mvCmd())
	cmd.AddCommand(mkdirCmd())
	cmd.AddCommand(rmCmd())
	cmd.AddCommand(findCmd())
	cmd.AddCommand(grepCmd())
	cmd.AddCommand(whichCmd())
	cmd.AddCommand(pkgCmd())
	cmd.AddCommand(gitCmd())
	cmd.AddCommand(userCmd())
	cmd.AddCommand(pingCmd())
	cmd.AddCommand(hostnameCmd())
	cmd.AddCommand(fetchCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
