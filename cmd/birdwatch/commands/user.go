package commands

import (
	"fmt"

	"birdwatch/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user <handle>",
	Short: "Looks up a user's profile.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient()
		defer cleanup()

		user, err := client.GetUserByScreenName(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to resolve user", err)
		}

		if *jsonOutput {
			printJSON(user)
			return
		}

		t := newTable()
		t.AppendRows([]table.Row{
			{"ID", user.ID},
			{"Name", user.Name},
			{"Handle", "@" + user.ScreenName},
			{"Followers", user.FollowersCount},
			{"Following", user.FollowingCount},
			{"Tweets", user.TweetCount},
		})
		t.Render()
		if user.Description != "" {
			fmt.Println(user.Description)
		}
	},
}
