package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/filescope/internal/engine"
)

var treeDepth int

var treeCmd = &cobra.Command{
	Use:   "tree [scope]",
	Short: "Show scopes as a tree",
	Long: `Show one scope, or every scope, as a tree.

Folder items are expanded from disk up to --depth levels. The listing is live;
nothing below a folder item is stored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close()

		req := &engine.TreeRequest{Depth: treeDepth}
		if len(args) == 1 {
			req.Scope = args[0]
		}

		return renderTree(cmd, eng, req)
	},
}

// renderTree builds and prints the tree for req.
func renderTree(cmd *cobra.Command, eng *engine.Engine, req *engine.TreeRequest) error {
	result, err := eng.Tree(cmd.Context(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	if len(result.Scopes) == 0 {
		PrintEmptyState("No scopes yet. Create one with 'filescope scope create <name>'.")
		return nil
	}
	PrintTree(result.Scopes)
	return nil
}

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 1, "Directory levels to expand below folder items")
}
