package cli

import (
	"github.com/spf13/cobra"
)

var initHelper bool

func init() {
	initCmd.Flags().BoolVar(&initHelper, "helper", false, "Also generate the alias helper file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scan the source tree and write aliases to every config file",
	Long: `Scan the source directory, derive one alias per subdirectory, and write them
to tsconfig.json plus any vite, webpack, or jest config found in the project.

With --force, an alias set that fails validation is still written.
With --helper, the alias helper module is generated afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd, initHelper)
	},
}

func runInit(cmd *cobra.Command, helper bool) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.log.Info("Initializing aliases...")
	return s.initialize(cmd, helper)
}

func (s *session) initialize(cmd *cobra.Command, helper bool) error {
	out := s.aliaser.Initialize(cmd.Context(), flagForce)
	s.aliaser.Report(out)
	if !out.Success {
		return errFailed
	}
	if !helper {
		return nil
	}

	s.log.Info("Generating helper file...")
	res := s.aliaser.GenerateHelperFile(cmd.Context())
	if !res.Success {
		s.log.Warn("%s", res.Message)
		for _, e := range res.Errors {
			s.log.Warn("  %s", e)
		}
		return nil
	}
	s.log.Success("%s", res.Message)
	return nil
}
