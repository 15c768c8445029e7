package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/filescope/internal/engine"
)

var scopeRmForce bool

var scopeRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"delete"},
	Short:   "Delete a scope",
	Long: `Delete a scope. Only the grouping is removed; files on disk are never touched.

A scope that still has items is only deleted with --force.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close()

		result, err := eng.DeleteScope(ctx, &engine.DeleteScopeRequest{
			Name:  args[0],
			Force: scopeRmForce,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Deleted scope '%s' (%s)", result.Name, PrintCount(result.Items, "item", "items")))
		return nil
	},
}

func init() {
	scopeRmCmd.Flags().BoolVarP(&scopeRmForce, "force", "f", false, "Delete the scope even if it has items")
}
