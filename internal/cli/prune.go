package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/filescope/internal/engine"
)

var pruneDryRun bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop items whose paths no longer exist",
	Long: `Remove every item whose path no longer exists on disk from every scope.

Missing items are also dropped automatically each time scopes are loaded; prune
reports them explicitly. Use --dry-run to preview what would be removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close()

		result, err := eng.Prune(ctx, &engine.PruneRequest{DryRun: pruneDryRun})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if len(result.Missing) == 0 {
			PrintSection("Prune")
			PrintEmptyState("No missing items found.")
			return nil
		}

		lines := make([]string, 0, len(result.Missing))
		for _, m := range result.Missing {
			lines = append(lines, fmt.Sprintf("%s: %s", m.Scope, m.Path))
		}

		if result.DryRun {
			PrintSection("Dry Run")
			PrintInfo(fmt.Sprintf("Would remove %s:", PrintCount(len(result.Missing), "missing item", "missing items")))
			PrintList(lines, 1)
			PrintWarning("Run without --dry-run to remove them.")
			return nil
		}

		PrintSuccess(fmt.Sprintf("Removed %s", PrintCount(len(result.Missing), "missing item", "missing items")))
		PrintList(lines, 1)
		return nil
	},
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "Preview what would be removed without removing")
}
