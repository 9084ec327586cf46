package commands

import (
	"time"

	"birdwatch/lib/platforms/twitter"
	"birdwatch/lib/serviceutil"

	"github.com/spf13/cobra"
)

var timelineCount *int
var timelineCursor *string
var timelineDelayMs *int

func init() {
	timelineCount = timelineCmd.Flags().IntP("count", "n", 20, "How many tweets to fetch.")
	timelineCursor = timelineCmd.Flags().String("cursor", "", "Resume from a previous run's cursor.")
	timelineDelayMs = timelineCmd.Flags().Int("delay-ms", 500, "Delay between page fetches.")
	rootCmd.AddCommand(timelineCmd)
}

var timelineCmd = &cobra.Command{
	Use:   "timeline <handle>",
	Short: "Fetches a user's timeline.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient()
		defer cleanup()

		user, err := client.GetUserByScreenName(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to resolve user", err)
		}

		result, err := client.GetUserTweets(cmd.Context(), user.ID, twitter.TimelineOptions{
			Count:          *timelineCount,
			Cursor:         *timelineCursor,
			InterPageDelay: time.Duration(*timelineDelayMs) * time.Millisecond,
		})
		if err != nil {
			// partial pages may still be worth showing before bailing
			if len(result.Tweets) > 0 {
				printTimeline(result)
			}
			serviceutil.Fatal("failed to fetch timeline", err)
		}
		printTimeline(result)
	},
}
