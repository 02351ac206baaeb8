package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aliasync/aliasync/internal/branding"
	"github.com/aliasync/aliasync/internal/config"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage project settings",
	Long:  configHelp(),
}

func configHelp() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Read and write the project settings stored in %s at the project root.\n\n", branding.ConfigFile())
	b.WriteString("Settings resolve in this order: command-line flags, environment variables\n")
	b.WriteString("(also read from .env), the config file, then built-in defaults.\n\nKeys:\n")
	for _, key := range config.Keys() {
		fmt.Fprintf(&b, "  %-18s %s\n", key, branding.EnvVar(key))
	}
	return b.String()
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value. List values such as exclude_dirs and tools are comma separated.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		if err := s.store.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !slices.Contains(config.Keys(), key) {
			return fmt.Errorf("%w: %s (valid keys: %s)", config.ErrUnknownKey, key, strings.Join(config.Keys(), ", "))
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.store.Get(key))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(s.store.Settings())
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "# %s\n", s.store.Path())
		_, err = w.Write(out)
		return err
	},
}
