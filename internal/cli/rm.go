package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/filescope/internal/engine"
)

var rmCmd = &cobra.Command{
	Use:   "rm <scope> <path>...",
	Short: "Remove files or folders from a scope",
	Long: `Remove paths from a scope. Files on disk are never touched.

Removing a folder removes only the folder item; items added separately below it
stay in the scope.`,
	Args: cobra.MinimumNArgs(2),
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

		result, err := eng.RemovePaths(ctx, &engine.RemovePathsRequest{
			CWD:   cwd,
			Scope: args[0],
			Paths: args[1:],
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if len(result.Removed) > 0 {
			PrintSuccess(fmt.Sprintf("Removed %s from '%s'", PrintCount(len(result.Removed), "path", "paths"), args[0]))
			PrintList(result.Removed, 1)
		}
		if len(result.NotFound) > 0 {
			PrintWarning(fmt.Sprintf("Not in scope '%s':", args[0]))
			PrintList(result.NotFound, 1)
		}
		return nil
	},
}
