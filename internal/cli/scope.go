package cli

import "github.com/spf13/cobra"

var scopeCmd = &cobra.Command{
	Use:   "scope",
	Short: "Create, list and delete scopes",
	Long: `Manage the named scopes of the current workspace.

A scope is an ordered set of files and folders. Folders stand for everything
below them; their contents are listed live by "filescope tree".`,
}

func init() {
	scopeCmd.AddCommand(scopeCreateCmd)
	scopeCmd.AddCommand(scopeLsCmd)
	scopeCmd.AddCommand(scopeRmCmd)
}
