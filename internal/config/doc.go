// Package config manages per-project settings stored in .aliasync.yaml at the
// project root. Values resolve in viper's usual order: command-line flags,
// ALIASYNC_* environment variables (also read from a .env file at the
// project root), the config file, then built-in defaults.
package config
