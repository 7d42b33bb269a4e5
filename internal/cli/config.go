package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/autochangelog/internal/config"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage autochangelog configuration",
	Long: `Manage autochangelog configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (AUTOCHANGELOG_*)
  2. Project config (.github/autochangelog.yml, or --config)
  3. User config (~/.config/autochangelog/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  autochangelog config show

  # List every key with its type and allowed values
  autochangelog config keys

  # Write a commented project config
  autochangelog config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.ShowYAML(config.LoadOptions{ProjectConfigPath: configPath})
		if err != nil {
			return clierrors.ConfigLoadFailed(err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of one key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Get(config.LoadOptions{ProjectConfigPath: configPath}, args[0])
		if err != nil {
			return clierrors.NewArgumentError(err.Error(),
				"Run 'autochangelog config keys' to list valid keys")
		}
		return printConfigValue(cmd, value)
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the known configuration keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cyan := color.New(color.FgCyan).SprintFunc()
		dim := color.New(color.Faint).SprintFunc()

		w := cmd.OutOrStdout()
		for _, schema := range config.SortedKeys() {
			kind := schema.Type.String()
			if len(schema.AllowedValues) > 0 {
				kind += " (" + strings.Join(schema.AllowedValues, "|") + ")"
			}
			fmt.Fprintf(w, "%s %s\n    %s\n", cyan(schema.Path), dim(kind), schema.Description)
		}
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config",
	Long: `Write a commented configuration file with every option at its default.

The file is written to --config when given, otherwise to
.github/autochangelog.yml. An existing file is left unchanged unless
--force is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.ProjectConfigPath()
		}
		return writeConfigTemplate(cmd, path, configInitForce)
	},
}

func init() {
	configCmd.GroupID = GroupSetup
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd, configGetCmd, configKeysCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func printConfigValue(cmd *cobra.Command, value interface{}) error {
	switch v := value.(type) {
	case string, bool, int, float64:
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	default:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding value: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
}

func writeConfigTemplate(cmd *cobra.Command, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists (use --force to overwrite)\n", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "creating config directory")
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing config")
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", green("✓"), path)
	return nil
}
