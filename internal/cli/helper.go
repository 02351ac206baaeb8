package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(helperCmd)
}

var helperCmd = &cobra.Command{
	Use:   "helper",
	Short: "Generate the TypeScript alias helper module",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHelper(cmd)
	},
}

func runHelper(cmd *cobra.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.log.Info("Generating helper file...")
	out := s.aliaser.GenerateHelperFile(cmd.Context())
	s.aliaser.Report(out)
	if !out.Success {
		return errFailed
	}
	return nil
}
