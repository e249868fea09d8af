package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
	"github.com/spectrail-labs/spectrail-cli/internal/core/ports/driving"
)

var (
	checkDirectives  string
	checkDryRun      bool
	checkInclude     []string
	checkExclude     []string
	checkConcurrency int
	checkToken       string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch tracked nodes and report changes",
	Long: `Runs one tracking pass: reads the directive file, fetches every
referenced node, normalises the results and compares them against the
persisted baseline. The baseline is updated unless --dry-run is given.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkDirectives, "directives", "d", "", "directives file (JSON or YAML)")
	checkCmd.Flags().BoolVar(&checkDryRun, "dry-run", false, "report changes without updating the baseline")
	checkCmd.Flags().StringSliceVar(&checkInclude, "include", nil, "track only the named properties")
	checkCmd.Flags().StringSliceVar(&checkExclude, "exclude", nil, "drop the named properties")
	checkCmd.Flags().IntVar(&checkConcurrency, "concurrency", 0, "parallel file fetches")
	checkCmd.Flags().StringVar(&checkToken, "token", "", "Figma access token (overrides config)")
	_ = checkCmd.MarkFlagRequired("directives")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	opts, err := trackOptions(checkDryRun, checkInclude, checkExclude)
	if err != nil {
		return err
	}
	return runPass(context.Background(), cmd, checkDirectives, opts, checkToken, checkConcurrency)
}

// trackOptions merges command flags with configured tracking defaults.
// Flags win; the config store supplies track.include, track.exclude and
// track.dry_run where the flags are unset.
func trackOptions(dryRun bool, include, exclude []string) (driving.RunOptions, error) {
	cfg, err := ensureConfigStore()
	if err != nil {
		return driving.RunOptions{}, err
	}

	opts := driving.RunOptions{
		DryRun:  dryRun,
		Include: include,
		Exclude: exclude,
	}
	if !opts.DryRun {
		opts.DryRun = cfg.GetBool("track.dry_run")
	}
	if len(opts.Include) == 0 {
		opts.Include = cfg.GetStringSlice("track.include")
	}
	if len(opts.Exclude) == 0 {
		opts.Exclude = cfg.GetStringSlice("track.exclude")
	}
	return opts, nil
}

// runPass loads the directive file and executes one tracking run.
// Shared between check and watch.
func runPass(ctx context.Context, cmd *cobra.Command, path string, opts driving.RunOptions, token string, concurrency int) error {
	directives, err := loadDirectives(path)
	if err != nil {
		return err
	}

	tracker, err := ensureTracker(token, concurrency)
	if err != nil {
		return err
	}

	result, err := tracker.Run(ctx, directives, opts)
	if err != nil {
		return fmt.Errorf("tracking run failed: %w", err)
	}

	renderResult(cmd, result)
	return nil
}

// renderResult prints the run summary: one line per added, changed or
// removed id, property changes indented beneath each changed id.
func renderResult(cmd *cobra.Command, result *domain.TrackResult) {
	det := result.Detection

	if result.DryRun {
		cmd.Println(mutedStyle.Render("Dry run: baseline not updated."))
	}

	if !det.HasChanges {
		cmd.Printf("No changes across %d tracked nodes.\n", len(result.Specs))
		printStats(cmd, result.Stats)
		return
	}

	cmd.Println(headerStyle.Render("Changes detected"))
	cmd.Println()

	for _, id := range det.Added {
		cmd.Printf("  %s %s %s\n", addedStyle.Render("added"), id, mutedStyle.Render(specName(result, id)))
	}

	for _, id := range det.Changed {
		cmd.Printf("  %s %s %s\n", changedStyle.Render("changed"), id, mutedStyle.Render(specName(result, id)))
		for _, change := range result.Changes[id] {
			cmd.Printf("      %s: %s -> %s\n", change.Path, change.PreviousValue, change.NewValue)
		}
		renderVariantChanges(cmd, result.VariantChanges[id])
	}

	for _, id := range det.Removed {
		cmd.Printf("  %s %s\n", removedStyle.Render("removed"), id)
	}

	cmd.Println()
	cmd.Printf("%d added, %d changed, %d removed.\n", len(det.Added), len(det.Changed), len(det.Removed))
	printStats(cmd, result.Stats)
}

// renderVariantChanges prints variant-level changes beneath a changed
// variant-set id.
func renderVariantChanges(cmd *cobra.Command, changes []domain.VariantChange) {
	for _, vc := range changes {
		label := vc.ID
		if vc.Name != "" {
			label = fmt.Sprintf("%s (%s)", vc.ID, vc.Name)
		}

		switch vc.Status {
		case domain.VariantAdded:
			cmd.Printf("      %s %s\n", addedStyle.Render("variant added"), label)
		case domain.VariantRemoved:
			cmd.Printf("      %s %s\n", removedStyle.Render("variant removed"), label)
		case domain.VariantChanged:
			cmd.Printf("      %s %s\n", changedStyle.Render("variant changed"), label)
			for _, change := range vc.Changes {
				cmd.Printf("          %s: %s -> %s\n", change.Path, change.PreviousValue, change.NewValue)
			}
		}
	}
}

func printStats(cmd *cobra.Command, stats domain.RunStats) {
	cmd.Println(mutedStyle.Render(fmt.Sprintf("%d requests, %d retries, %d nodes fetched.",
		stats.Requests, stats.Retries, stats.Nodes)))
	for _, w := range stats.Warnings {
		cmd.Printf("Warning: %s\n", w)
	}
}

// specName returns the display name for an id in this run's fresh specs,
// or an empty string when unknown.
func specName(result *domain.TrackResult, id string) string {
	if spec, ok := result.Specs[id]; ok && spec != nil {
		return spec.Name
	}
	return ""
}
