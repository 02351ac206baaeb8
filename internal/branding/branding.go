// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork can rename the tool without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	EnvPrefix   string `yaml:"env_prefix"`
	ConfigFile  string `yaml:"config_file"`
	HelperFile  string `yaml:"helper_file"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:     "aliasync",
			DisplayName: "Aliasync",
			Description: "Keeps import aliases in sync across build tool configs",
			EnvPrefix:   "ALIASYNC",
			ConfigFile:  ".aliasync.yaml",
			HelperFile:  "aliases.ts",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "aliasync").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "ALIASYNC").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ConfigFile returns the per-project config file name (e.g., ".aliasync.yaml").
func ConfigFile() string { load(); return defaults.ConfigFile }

// HelperFile returns the default name of the generated alias helper module.
func HelperFile() string { load(); return defaults.HelperFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("SRC_DIR") → "ALIASYNC_SRC_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
