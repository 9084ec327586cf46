package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"birdwatch/lib/platforms/twitter"
	"birdwatch/lib/serviceutil"
	"birdwatch/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func printJSON(v any) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		serviceutil.Fatal("failed to encode output", err)
	}
	fmt.Println(string(encoded))
}

func printTimeline(result twitter.TimelineResult) {
	if *jsonOutput {
		printJSON(result)
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"ID", "Author", "Time", "Text"})
	for _, tweet := range result.Tweets {
		created := ""
		if tweet.CreatedAt != nil {
			created = tweet.CreatedAt.Format(time.DateTime)
		}
		t.AppendRow(table.Row{
			tweet.ID,
			"@" + tweet.Author.ScreenName,
			created,
			textutil.Snippet(tweet.Text, 80),
		})
	}
	t.Render()

	if result.NextCursor != "" {
		slog.Info("more results available", "cursor", result.NextCursor)
	}
}

func printTweet(tweet twitter.Tweet) {
	if *jsonOutput {
		printJSON(tweet)
		return
	}

	fmt.Printf("@%s (%s)", tweet.Author.ScreenName, tweet.Author.Name)
	if tweet.CreatedAt != nil {
		fmt.Printf(" at %s", tweet.CreatedAt.Format(time.DateTime))
	}
	fmt.Printf("\n\n%s\n", tweet.Text)
	if tweet.Counts != nil {
		fmt.Printf(
			"\n%d likes, %d retweets, %d replies\n",
			tweet.Counts.Likes, tweet.Counts.Retweets, tweet.Counts.Replies,
		)
	}
	for _, m := range tweet.Media {
		fmt.Printf("media (%s): %s\n", m.Type, m.URL)
	}
	if tweet.QuotedTweet != nil {
		fmt.Printf(
			"\nquoting @%s: %s\n",
			tweet.QuotedTweet.Author.ScreenName,
			textutil.Snippet(tweet.QuotedTweet.Text, 120),
		)
	}
}
