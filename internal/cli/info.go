package cli

import (
	"fmt"
	"io"

	"github.com/aliasync/aliasync/internal/aliaser"
	"github.com/spf13/cobra"
)

var infoFormat string

func init() {
	infoCmd.Flags().StringVar(&infoFormat, "format", formatText, "Output format: text, json, or yaml")
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show project information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(cmd, infoFormat)
	},
}

func runInfo(cmd *cobra.Command, format string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	info := s.aliaser.Info(cmd.Context())

	w := cmd.OutOrStdout()
	if done, err := writeStructured(w, format, info); done {
		return err
	}
	printInfo(w, info)
	return nil
}

func printInfo(w io.Writer, info *aliaser.ProjectInfo) {
	fmt.Fprintln(w, "Project Information:")
	fmt.Fprintf(w, "   Root Directory: %s\n", info.RootDir)
	fmt.Fprintf(w, "   Source Directory: %s\n", info.SrcDir)
	fmt.Fprintf(w, "   Package Manager: %s\n", info.PackageManager)
	if info.TypeScript != "" {
		fmt.Fprintf(w, "   TypeScript: %s\n", info.TypeScript)
	}
	fmt.Fprintf(w, "   Aliases: %d\n", len(info.Aliases))
	for _, cf := range info.ConfigFiles {
		if cf.Exists {
			fmt.Fprintf(w, "   Config: %s (%s)\n", cf.Path, cf.Tool)
		}
	}
}
