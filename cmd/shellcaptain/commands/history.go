package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded invocations",
	}

	var limit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "List recent invocations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			invocations, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, inv := range invocations {
				status := "ok"
				if inv.ErrorKind != "" {
					status = inv.ErrorKind
				}
				fmt.Fprintf(out, "%s  %-8s %-16s exit=%d %s  %s\n",
					inv.StartedAt.Format(time.RFC3339), inv.Mode, status,
					inv.ExitCode, inv.Duration.Round(time.Millisecond),
					strings.Join(inv.Argv, " "))
			}
			return nil
		},
	}
	recent.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show")

	var olderThan time.Duration
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete invocations older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d invocations\n", removed)
			return nil
		},
	}
	prune.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "delete entries older than this duration")

	cmd.AddCommand(recent, prune)
	return cmd
}
