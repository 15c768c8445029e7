package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

var scopeLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List scopes",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close()

		result, err := eng.ListScopes(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Scopes")
		if len(result.Scopes) == 0 {
			PrintEmptyState("No scopes yet. Create one with 'filescope scope create <name>'.")
			return nil
		}

		rows := make([][]string, 0, len(result.Scopes))
		for _, s := range result.Scopes {
			rows = append(rows, []string{s.Name, strconv.Itoa(s.Items)})
		}
		PrintTable([]string{"NAME", "ITEMS"}, rows)
		return nil
	},
}
