package cli

import (
	"fmt"
	"io"

	"github.com/aliasync/aliasync/internal/alias"
	"github.com/aliasync/aliasync/internal/aliaser"
	"github.com/aliasync/aliasync/internal/schema"
	"github.com/spf13/cobra"
)

var validateFormat string

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", formatText, "Output format: text, json, or yaml")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate project structure, aliases, and configuration files",
	Long: `Check that the project root and source directory exist, that the scanned
alias set has no duplicates or invalid names, that every discovered config file
is writable and parseable, and that the project config file matches its schema.
Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		report := s.aliaser.Validate(cmd.Context())
		cfg, err := s.store.Validate()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		done, err := writeStructured(w, validateFormat, validateOutput{
			Structure: report.Structure,
			Aliases:   report.Aliases,
			Files:     report.Files,
			Config:    cfg,
		})
		if !done {
			printReport(w, report, cfg)
		}
		if err != nil {
			return err
		}

		if !report.Valid() || !cfg.Valid {
			return errFailed
		}
		return nil
	},
}

type validateOutput struct {
	Structure *alias.ValidationResult `json:"structure" yaml:"structure"`
	Aliases   *alias.ValidationResult `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Files     []aliaser.FileCheck     `json:"files,omitempty" yaml:"files,omitempty"`
	Config    *schema.Result          `json:"config" yaml:"config"`
}

func printReport(w io.Writer, report *aliaser.Report, cfg *schema.Result) {
	if report.Structure.IsValid {
		fmt.Fprintln(w, "Project structure is valid")
	} else {
		fmt.Fprintln(w, "Project validation failed:")
	}
	printResult(w, report.Structure)

	if report.Aliases != nil {
		if report.Aliases.IsValid {
			fmt.Fprintln(w, "Aliases are valid")
		} else {
			fmt.Fprintln(w, "Alias validation failed:")
		}
		printResult(w, report.Aliases)
	}

	for _, f := range report.Files {
		state := "ok"
		if !f.Result.IsValid {
			state = "invalid"
		}
		fmt.Fprintf(w, "%s: %s (%s)\n", f.Tool, f.Path, state)
		printResult(w, f.Result)
	}

	if !cfg.Valid {
		fmt.Fprintln(w, "Config file does not match its schema:")
		for _, issue := range cfg.Issues {
			fmt.Fprintf(w, "   %s\n", issue)
		}
	}
}

func printResult(w io.Writer, r *alias.ValidationResult) {
	for _, e := range r.Errors {
		fmt.Fprintf(w, "   error: %s\n", e)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "   warning: %s\n", warning)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "   suggestion: %s\n", s)
	}
}
