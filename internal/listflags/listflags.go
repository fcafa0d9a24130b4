// Package listflags registers the output flags shared by listing and
// display commands.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag to list commands.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "all", false, "Include deleted records")
}

// AddDeletedFlag adds a --deleted flag that lists only soft-deleted records.
// It cannot be combined with --all.
func AddDeletedFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "deleted", false, "Show only deleted records")
	if cmd.Flags().Lookup("all") != nil {
		cmd.MarkFlagsMutuallyExclusive("deleted", "all")
	}
}

// AddJSONFlag adds a shared --json flag.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}
