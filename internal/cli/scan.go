package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var scanFormat string

func init() {
	scanCmd.Flags().StringVar(&scanFormat, "format", formatText, "Output format: text, json, or yaml")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the source tree and print the aliases it would produce",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		s.log.Debug("Scanning project structure...")

		aliases, err := s.aliaser.Scan(cmd.Context())
		if err != nil {
			return fmt.Errorf("scanning for aliases: %w", err)
		}

		w := cmd.OutOrStdout()
		if done, err := writeStructured(w, scanFormat, aliases); done {
			return err
		}

		fmt.Fprintf(w, "Detected %d aliases:\n\n", len(aliases))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, a := range aliases {
			fmt.Fprintf(tw, "  %s\t→ %s\n", a.Alias, a.Path)
		}
		return tw.Flush()
	},
}
