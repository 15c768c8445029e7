package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/filescope/internal/engine"
)

var watchDepth int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep scopes in sync with the filesystem",
	Long: `Watch the workspace and keep every scope in sync until interrupted.

Files created inside a tracked folder join the folder's scopes. Deleted paths
and everything below them leave every scope. Renamed or moved paths keep their
membership at the new location. The scope tree is printed again after every
change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eng, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer eng.Close()

		req := &engine.TreeRequest{Depth: watchDepth}
		render := func() {
			if err := renderTree(cmd, eng, req); err != nil {
				PrintError(err.Error())
			}
		}

		if !jsonOutput {
			PrintSection("Watching")
			PrintLabelValue("Workspace", eng.Root())
			PrintLabelValue("Workspace ID", eng.WorkspaceID())
			PrintInfo("")
		}
		render()

		return eng.Watch(ctx, render)
	},
}

func init() {
	watchCmd.Flags().IntVarP(&watchDepth, "depth", "d", 1, "Directory levels to expand below folder items")
}
