package commands

import (
	"birdwatch/lib/platforms/twitter"
	"birdwatch/lib/serviceutil"

	"github.com/spf13/cobra"
)

var threadCount *int

func init() {
	threadCount = threadCmd.Flags().IntP("count", "n", 40, "How many tweets of the conversation to fetch.")
	rootCmd.AddCommand(threadCmd)
	rootCmd.AddCommand(tweetCmd)
}

var threadCmd = &cobra.Command{
	Use:   "thread <tweet_id>",
	Short: "Fetches the conversation around a tweet.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient()
		defer cleanup()

		result, err := client.GetTweetThread(cmd.Context(), args[0], twitter.TimelineOptions{
			Count: *threadCount,
		})
		if err != nil {
			if len(result.Tweets) > 0 {
				printTimeline(result)
			}
			serviceutil.Fatal("failed to fetch thread", err)
		}
		printTimeline(result)
	},
}

var tweetCmd = &cobra.Command{
	Use:   "tweet <tweet_id>",
	Short: "Fetches a single tweet.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient()
		defer cleanup()

		tweet, err := client.GetTweet(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to fetch tweet", err)
		}
		printTweet(tweet)
	},
}
