package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aliasync/aliasync/internal/aliaser"
	"github.com/aliasync/aliasync/internal/config"
	"github.com/spf13/cobra"
)

var (
	watchDebounce      time.Duration
	watchIgnoreInitial bool
	watchPersistent    bool
)

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", config.DefaultDebounce, "Quiet period before a sync runs")
	watchCmd.Flags().BoolVar(&watchIgnoreInitial, "ignore-initial", true, "Skip the sync at startup")
	watchCmd.Flags().BoolVar(&watchPersistent, "persistent", true, "Keep watching after the first sync")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source tree and sync when directories change",
	Long: `Watch the source directory recursively. Adding or removing a directory
triggers a sync after the debounce period. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, aliaser.WatchOptions{
			IgnoreInitial: watchIgnoreInitial,
			Persistent:    watchPersistent,
		})
	},
}

// runWatch blocks until interrupted. The debounce comes from the config
// store, which already reflects an explicit --debounce flag.
func runWatch(cmd *cobra.Command, opts aliaser.WatchOptions) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	opts.Debounce = s.store.Settings().Debounce

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.log.Info("Starting watch mode...")
	return s.aliaser.Watch(ctx, opts)
}
