package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/filescope/internal/engine"
)

var scopeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a scope",
	Long: `Create an empty scope. Creating a scope that already exists is not an
error; the existing scope is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close()

		result, err := eng.CreateScope(ctx, &engine.CreateScopeRequest{Name: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.Created {
			PrintSuccess(fmt.Sprintf("Created scope '%s'", result.Name))
		} else {
			PrintWarning(fmt.Sprintf("Scope '%s' already exists", result.Name))
		}
		return nil
	},
}
