package commands

import (
	"time"

	"birdwatch/lib/platforms/twitter"
	"birdwatch/lib/serviceutil"

	"github.com/spf13/cobra"
)

var searchCount *int
var searchCursor *string
var searchTop *bool
var searchDelayMs *int

func init() {
	searchCount = searchCmd.Flags().IntP("count", "n", 20, "How many tweets to fetch.")
	searchCursor = searchCmd.Flags().String("cursor", "", "Resume from a previous run's cursor.")
	searchTop = searchCmd.Flags().Bool("top", false, "Rank by relevance instead of recency.")
	searchDelayMs = searchCmd.Flags().Int("delay-ms", 500, "Delay between page fetches.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches tweets matching a raw query.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient()
		defer cleanup()

		product := twitter.SearchLatest
		if *searchTop {
			product = twitter.SearchTop
		}

		result, err := client.SearchTweets(cmd.Context(), args[0], product, twitter.TimelineOptions{
			Count:          *searchCount,
			Cursor:         *searchCursor,
			InterPageDelay: time.Duration(*searchDelayMs) * time.Millisecond,
		})
		if err != nil {
			if len(result.Tweets) > 0 {
				printTimeline(result)
			}
			serviceutil.Fatal("failed to search", err)
		}
		printTimeline(result)
	},
}
