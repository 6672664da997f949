package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecairns22/ShellCaptain/internal/release"
)

func fetchCmd() *cobra.Command {
	var (
		owner   string
		version string
		destDir string
	)

	cmd := &cobra.Command{
		Use:   "fetch <repo>",
		Short: "Download a release binary from GitHub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.cleanup()

			client, err := release.New(app.cfg.GitHub.Token, app.cfg.GitHub.Owner, app.cfg.GitHub.AssetPattern)
			if err != nil {
				return fmt.Errorf("creating release client: %w", err)
			}

			repo := args[0]
			resolved, err := client.ResolveVersion(cmd.Context(), owner, repo, version)
			if err != nil {
				return err
			}

			path, err := client.Download(cmd.Context(), owner, repo, resolved, destDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "repository owner, defaults to the configured owner")
	cmd.Flags().StringVar(&version, "version", "latest", "release tag to download")
	cmd.Flags().StringVar(&destDir, "dest", ".", "directory to write the binary into")
	return cmd
}
