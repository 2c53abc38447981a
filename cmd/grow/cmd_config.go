package main

import (
	"fmt"
	"os"

	"growingcode/cmd/grow/ui"
	"growingcode/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

// configCmd groups config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage .growing/config.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Writes the default configuration to .growing/config.yaml (or --config).

The existing file is not loaded first, so --force can replace a config that
no longer validates.`,
	Args: cobra.NoArgs,
	// Replaces the root hook: no config load, no logger, no history database.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	styles := ui.NewStyles(ui.DetectTheme(), out)
	path := resolvedConfigPath()

	if _, err := os.Stat(path); err == nil && !forceInit {
		fmt.Fprintln(out, styles.Warning.Render(fmt.Sprintf("Config already exists at %s (use --force to overwrite)", path)))
		return nil
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintln(out, styles.Info.Render(fmt.Sprintf("Wrote default config to %s", path)))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", resolvedConfigPath())
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
