// file: cmd/config.go
// version: 1.0.0
// guid: 3e9a1c57-b2d4-4f08-a6e1-7c5d90b8f214

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jdfalk/catalog-search/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show or write the effective configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a file",
		Long: `Write the effective configuration (defaults, file, env and flags merged)
to --config, or to $HOME/.catalog-search.yaml when --config is not set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path := cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInit(cmd.OutOrStdout(), path, force)
		},
	}
)

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(out io.Writer) error {
	data, err := config.AppConfig.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func runConfigInit(out io.Writer, path string, force bool) error {
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := config.SaveConfigFile(config.AppConfig, path, force); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
