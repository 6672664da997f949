package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecairns22/ShellCaptain/internal/netutil"
)

func pingCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "ping <host>",
		Short: "Ping a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := netutil.New(app.exec, app.stream)
			return mgr.Ping(cmd.Context(), args[0], count)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 3, "number of echo requests to send")
	return cmd
}

func hostnameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostname",
		Short: "Print the system hostname",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			mgr := netutil.New(app.exec, app.capture)
			name, err := mgr.Hostname(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	return cmd
}
