package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

var specsCmd = &cobra.Command{
	Use:   "specs",
	Short: "Manage persisted node specs",
	Long:  `List, inspect or delete node specs persisted by previous runs.`,
}

var specsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted specs",
	RunE:  runSpecsList,
}

var specsShowCmd = &cobra.Command{
	Use:   "show [node-id]",
	Short: "Print one persisted spec as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpecsShow,
}

var specsDeleteCmd = &cobra.Command{
	Use:   "delete [node-id]",
	Short: "Delete one persisted spec",
	Long:  `Removes a spec from the baseline. The node shows up as added on the next run.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSpecsDelete,
}

func init() {
	specsCmd.AddCommand(specsListCmd)
	specsCmd.AddCommand(specsShowCmd)
	specsCmd.AddCommand(specsDeleteCmd)
	rootCmd.AddCommand(specsCmd)
}

func runSpecsList(cmd *cobra.Command, _ []string) error {
	store, err := ensureSpecStore()
	if err != nil {
		return err
	}

	ctx := context.Background()

	specs, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading specs: %w", err)
	}

	if len(specs) == 0 {
		cmd.Println("No specs persisted yet.")
		return nil
	}

	ids := make([]string, 0, len(specs))
	for id := range specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	cmd.Println(headerStyle.Render("Persisted specs"))
	cmd.Println()
	for _, id := range ids {
		spec := specs[id]
		line := fmt.Sprintf("  %s  %s", id, spec.ContentHash)
		if spec.Name != "" {
			line += "  " + mutedStyle.Render(spec.Name)
		}
		if len(spec.Variants) > 0 {
			line += "  " + mutedStyle.Render(fmt.Sprintf("(%d variants)", len(spec.Variants)))
		}
		cmd.Println(line)
	}
	cmd.Println()
	cmd.Printf("Total: %d specs\n", len(specs))
	return nil
}

func runSpecsShow(cmd *cobra.Command, args []string) error {
	store, err := ensureSpecStore()
	if err != nil {
		return err
	}

	ctx := context.Background()

	spec, err := store.Load(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrSpecNotFound) {
			return fmt.Errorf("no persisted spec for node %s", args[0])
		}
		return fmt.Errorf("loading spec: %w", err)
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding spec: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func runSpecsDelete(cmd *cobra.Command, args []string) error {
	store, err := ensureSpecStore()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err := store.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("deleting spec: %w", err)
	}

	cmd.Printf("Spec %s deleted.\n", args[0])
	return nil
}
