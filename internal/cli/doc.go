// Package cli defines the Cobra command tree for the aliasync CLI. Each file
// in this package registers one command with the root command. Commands
// delegate to the aliaser package for the work and only handle flag parsing,
// output formatting, and the interactive menu.
package cli
