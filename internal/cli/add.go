package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/filescope/internal/engine"
)

var addCmd = &cobra.Command{
	Use:   "add <scope> [path...]",
	Short: "Add files or folders to a scope",
	Long: `Add files or folders to a scope.

Paths may be relative to the current directory, absolute, or contain "..".
With no path the current directory is added. A path that does not exist yet
is still added, as a file.`,
	Args: cobra.MinimumNArgs(1),
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

		result, err := eng.AddPaths(ctx, &engine.AddPathsRequest{
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

		for _, item := range result.Added {
			PrintSuccess(fmt.Sprintf("Added %s %s", item.Kind, item.Path))
		}
		for _, p := range result.AlreadyPresent {
			PrintWarning(fmt.Sprintf("Already in scope: %s", p))
		}
		for _, p := range result.Missing {
			PrintWarning(fmt.Sprintf("Does not exist yet: %s", p))
		}
		return nil
	},
}
