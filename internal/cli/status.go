package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aliasync/aliasync/internal/generator"
	"github.com/spf13/cobra"
)

var statusFormat string

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", formatText, "Output format: text, json, or yaml")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Compare each config file's aliases with a fresh scan",
	Long: `Read the alias block back from every config file and compare it with the
aliases a fresh scan produces. A file is up-to-date, stale (with the missing
and extra aliases listed), or not-generated. Nothing is written.

Exits non-zero when any existing file is stale.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		results, err := s.aliaser.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("checking status: %w", err)
		}

		w := cmd.OutOrStdout()
		done, err := writeStructured(w, statusFormat, results)
		if !done {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TOOL\tSTATE\tFILE")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Tool, r.State, r.Path)
				if len(r.Missing) > 0 {
					fmt.Fprintf(tw, "\t  missing: %s\t\n", strings.Join(r.Missing, ", "))
				}
				if len(r.Extra) > 0 {
					fmt.Fprintf(tw, "\t  extra: %s\t\n", strings.Join(r.Extra, ", "))
				}
			}
			err = tw.Flush()
		}
		if err != nil {
			return err
		}

		for _, r := range results {
			if r.State == generator.StateStale {
				return errFailed
			}
		}
		return nil
	},
}
