package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/spectrail-labs/spectrail-cli/internal/core/ports/driving"
	"github.com/spectrail-labs/spectrail-cli/internal/logger"
)

var (
	watchDirectives  string
	watchInclude     []string
	watchExclude     []string
	watchConcurrency int
	watchToken       string
	watchDebounce    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the check whenever the directives file changes",
	Long: `Runs one tracking pass immediately, then watches the directives file
and re-runs on every change until interrupted. Rapid successive writes
are coalesced into a single run.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDirectives, "directives", "d", "", "directives file (JSON or YAML)")
	watchCmd.Flags().StringSliceVar(&watchInclude, "include", nil, "track only the named properties")
	watchCmd.Flags().StringSliceVar(&watchExclude, "exclude", nil, "drop the named properties")
	watchCmd.Flags().IntVar(&watchConcurrency, "concurrency", 0, "parallel file fetches")
	watchCmd.Flags().StringVar(&watchToken, "token", "", "Figma access token (overrides config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before re-running")
	_ = watchCmd.MarkFlagRequired("directives")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := trackOptions(false, watchInclude, watchExclude)
	if err != nil {
		return err
	}
	return watchLoop(ctx, cmd, watchDirectives, opts, watchToken, watchConcurrency, watchDebounce)
}

// watchLoop runs one pass immediately, then re-runs on every debounced
// change to the directives file until ctx is cancelled. The initial
// pass is fatal on error so configuration problems surface right away;
// later failures are reported and watching continues.
func watchLoop(ctx context.Context, cmd *cobra.Command, path string, opts driving.RunOptions, token string, concurrency int, debounce time.Duration) error {
	if err := runPass(ctx, cmd, path, opts, token, concurrency); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directory: editors replace files on save,
	// which drops a watch held on the file itself.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	cmd.Printf("Watching %s for changes. Press ctrl-c to stop.\n", path)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopping watch.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			logger.Section("Directives changed")
			if err := runPass(ctx, cmd, path, opts, token, concurrency); err != nil {
				// A failed pass is reported, not fatal: the next write
				// triggers a fresh attempt.
				cmd.PrintErrf("Run failed: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
