package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ecairns22/ShellCaptain/internal/config"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config %s already exists, use --force to overwrite", path)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("creating config dir: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.TemplateConfig()), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			if err := os.MkdirAll(varDir, 0755); err != nil {
				return fmt.Errorf("creating state dir: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
