package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync aliases to configuration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd)
	},
}

func runSync(cmd *cobra.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.log.Info("Syncing aliases...")
	out := s.aliaser.Sync(cmd.Context())
	s.aliaser.Report(out)
	if !out.Success {
		return errFailed
	}
	return nil
}
