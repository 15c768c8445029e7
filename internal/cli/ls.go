package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/filescope/internal/engine"
)

var lsCmd = &cobra.Command{
	Use:   "ls <scope>",
	Short: "List the items of a scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close()

		result, err := eng.ListItems(ctx, &engine.ListItemsRequest{Scope: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Scope: " + result.Scope)
		if len(result.Items) == 0 {
			PrintEmptyState("No items. Add some with 'filescope add " + result.Scope + " <path>'.")
			return nil
		}

		rows := make([][]string, 0, len(result.Items))
		for _, item := range result.Items {
			status := "ok"
			if !item.Exists {
				status = "missing"
			}
			rows = append(rows, []string{item.RelPath, string(item.Kind), status})
		}
		PrintTable([]string{"PATH", "TYPE", "STATUS"}, rows)
		return nil
	},
}
