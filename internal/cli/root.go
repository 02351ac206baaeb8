package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aliasync/aliasync/internal/aliaser"
	"github.com/aliasync/aliasync/internal/branding"
	"github.com/aliasync/aliasync/internal/config"
	"github.com/aliasync/aliasync/internal/logger"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flags shared by every command.
var (
	flagVerbose bool
	flagQuiet   bool
	flagNoColor bool
	flagRoot    string
	flagSrcDir  string
	flagPrefix  string
	flagForce   bool
)

var (
	rootInit        bool
	rootSync        bool
	rootWatch       bool
	rootDryRun      bool
	rootInteractive bool
)

// errFailed is returned when an operation produced an unsuccessful outcome
// that has already been reported.
var errFailed = errors.New("operation failed")

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Show detailed output")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress non-error output")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.StringVar(&flagRoot, "root", "", "Project root directory (default: current directory)")
	pf.StringVar(&flagSrcDir, "src-dir", "", "Source directory to scan (default: src)")
	pf.StringVar(&flagPrefix, "prefix", "", "Alias prefix (default: @)")
	pf.BoolVar(&flagForce, "force", false, "Update configs even if alias validation fails")

	f := rootCmd.Flags()
	f.BoolVarP(&rootInit, "init", "i", false, "Initialize aliases and generate the helper file")
	f.BoolVarP(&rootSync, "sync", "s", false, "Sync aliases to configuration files")
	f.BoolVarP(&rootWatch, "watch", "w", false, "Watch for changes and auto-sync")
	f.BoolVarP(&rootDryRun, "dry-run", "d", false, "Show what would be changed without making changes")
	f.BoolVar(&rootInteractive, "interactive", false, "Run in interactive mode")
	rootCmd.MarkFlagsMutuallyExclusive("init", "sync", "watch", "dry-run", "interactive")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` derives import aliases from the directory layout of a source tree and
keeps tsconfig, vite, webpack, and jest configuration in sync with it.

Run without flags to initialize aliases for the current project.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case rootInteractive:
		return runInteractive(cmd)
	case rootWatch:
		return runWatch(cmd, aliaser.DefaultWatchOptions())
	case rootSync:
		return runSync(cmd)
	case rootDryRun:
		return runDryRun(cmd)
	case rootInit:
		return runInit(cmd, true)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.log.Warn("No action specified. Running initialization...")
	return s.initialize(cmd, false)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFailed) {
		printError(rootCmd.ErrOrStderr(), err, flagVerbose)
	}
	return err
}

// printError writes err and, when verbose, every error it wraps.
func printError(w io.Writer, err error, verbose bool) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if !verbose {
		return
	}
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(w, "  caused by: %v\n", cause)
	}
}

// session is the per-invocation state shared by commands.
type session struct {
	root    string
	log     *logger.Logger
	store   *config.Store
	aliaser *aliaser.Aliaser
}

func newSession(cmd *cobra.Command) (*session, error) {
	log := logger.New(logger.Options{
		Verbose: flagVerbose,
		Quiet:   flagQuiet,
		NoColor: flagNoColor,
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	})

	root, err := resolveRoot(flagRoot)
	if err != nil {
		return nil, err
	}

	store, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	bindings := map[string]string{
		config.KeySrcDir:   "src-dir",
		config.KeyPrefix:   "prefix",
		config.KeyDebounce: "debounce",
	}
	for key, name := range bindings {
		if err := store.BindFlag(key, cmd.Flag(name)); err != nil {
			return nil, err
		}
	}

	settings := store.Settings()
	log.Debug("root=%s src_dir=%s prefix=%s", root, settings.SrcDir, settings.Prefix)

	return &session{
		root:  root,
		log:   log,
		store: store,
		aliaser: aliaser.New(aliaser.Options{
			RootDir:  root,
			Settings: settings,
			Log:      log,
		}),
	}, nil
}

func resolveRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", dir, err)
	}
	return abs, nil
}
