package commands

import (
	"birdwatch/lib/platforms/twitter"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	queryIDsCmd.AddCommand(queryIDsRefreshCmd)
	queryIDsCmd.AddCommand(queryIDsShowCmd)
	rootCmd.AddCommand(queryIDsCmd)
}

var queryIDsCmd = &cobra.Command{
	Use:   "query-ids",
	Short: "Inspects and refreshes the operation query id registry.",
}

var queryIDsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the current candidate query ids per operation.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient()
		defer cleanup()

		t := newTable()
		t.AppendHeader(table.Row{"Operation", "Candidates"})
		for _, name := range twitter.OperationNames() {
			for _, id := range client.Registry().Resolve(name) {
				t.AppendRow(table.Row{name, id})
			}
		}
		t.Render()
	},
}

var queryIDsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-derives query ids from the platform's web bundle.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient()
		defer cleanup()

		client.Registry().Refresh(cmd.Context(), twitter.OperationNames(), true)
	},
}
