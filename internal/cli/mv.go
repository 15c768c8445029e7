package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/filescope/internal/engine"
)

var mvCmd = &cobra.Command{
	Use:   "mv <old-path> <new-path>",
	Short: "Point tracked paths at their new location",
	Long: `Rewrite every tracked item at or below <old-path> so it sits at the same
relative place under <new-path>, in every scope. Files on disk are not moved.

Items whose paths are missing are dropped whenever scopes are loaded, so
<new-path> should exist by the time the next command runs.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		result, err := eng.Relocate(ctx, &engine.RelocateRequest{
			CWD:     cwd,
			OldPath: args[0],
			NewPath: args[1],
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Moved %s from %s to %s", PrintCount(result.Moved, "item", "items"), result.OldPath, result.NewPath))
		return nil
	},
}
