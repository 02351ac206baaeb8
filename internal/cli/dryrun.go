package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(dryRunCmd)
}

var dryRunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Show which files a sync would write without changing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDryRun(cmd)
	},
}

func runDryRun(cmd *cobra.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.log.Info("Running dry-run...")

	out, targets := s.aliaser.DryRun(cmd.Context())
	if !out.Success {
		s.aliaser.Report(out)
		return errFailed
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Aliases:")
	for _, a := range out.Aliases {
		fmt.Fprintf(w, "  %s → %s\n", a.Alias, a.Path)
	}
	fmt.Fprintln(w, "Files:")
	for _, t := range targets {
		fmt.Fprintf(w, "  %-6s %s (%s)\n", t.Action, t.Path, t.Tool)
	}
	s.log.Info("%s", out.Message)
	return nil
}
