package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TimelineOptions applies to every paginated read operation.
type TimelineOptions struct {
	// Count is the number of unique tweets to accumulate.
	Count int
	// MaxPages overrides the derived page budget, the hard cap still
	// applies.
	MaxPages int
	// Cursor resumes a previous capped call.
	Cursor string
	// InterPageDelay self-throttles between page fetches.
	InterPageDelay time.Duration
}

// TimelineResult is the stable outcome of a paginated read. NextCursor is
// set only when the call stopped at its page budget with more available.
type TimelineResult struct {
	Tweets     []Tweet `json:"tweets"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

type userTweetsVariables struct {
	UserID                                 string `json:"userId"`
	Count                                  int    `json:"count"`
	Cursor                                 string `json:"cursor,omitempty"`
	IncludePromotedContent                 bool   `json:"includePromotedContent"`
	WithQuickPromoteEligibilityTweetFields bool   `json:"withQuickPromoteEligibilityTweetFields"`
	WithVoice                              bool   `json:"withVoice"`
}

type userTweetsData struct {
	User struct {
		Result struct {
			TimelineV2 *timelineWrapper `json:"timeline_v2"`
			Timeline   *timelineWrapper `json:"timeline"`
		} `json:"result"`
	} `json:"user"`
}

type timelineWrapper struct {
	Timeline struct {
		Instructions []instruction `json:"instructions"`
	} `json:"timeline"`
}

func (w *timelineWrapper) instructions() []instruction {
	if w == nil {
		return nil
	}
	return w.Timeline.Instructions
}

// GetUserTweets walks a user's timeline into a deduplicated, bounded set of
// tweets. Tweets already accumulated survive a mid-pagination failure, the
// error reports why the walk stopped.
func (c *Client) GetUserTweets(ctx context.Context, userID string, opts TimelineOptions) (TimelineResult, error) {
	ctx, span := tracer.Start(ctx, "client:GetUserTweets")
	defer span.End()

	fetch := func(ctx context.Context, cursor string, count int) (Page[Tweet], error) {
		data, err := c.runOperation(ctx, opUserTweets, userTweetsVariables{
			UserID: userID,
			Count:  count,
			Cursor: cursor,
		})
		if err != nil {
			return Page[Tweet]{}, err
		}

		var parsed userTweetsData
		if err := json.Unmarshal(data, &parsed); err != nil {
			return Page[Tweet]{}, fmt.Errorf("parse user tweets response: %w", err)
		}

		// the payload moved from "timeline" to "timeline_v2" at some
		// point, probe the newer location first
		instructions := parsed.User.Result.TimelineV2.instructions()
		if instructions == nil {
			instructions = parsed.User.Result.Timeline.instructions()
		}
		return c.timelinePage(instructions)
	}

	result, err := Paginate(ctx, paginateOptions(opts), tweetIdentity, fetch)
	return TimelineResult{Tweets: result.Items, NextCursor: result.NextCursor}, err
}

// timelinePage normalizes one page of instructions into mapped tweets.
func (c *Client) timelinePage(instructions []instruction) (Page[Tweet], error) {
	raw, cursor := collectTimeline(instructions)
	page := Page[Tweet]{NextCursor: cursor}
	for _, t := range raw {
		if mapped := mapTweet(t, c.mapOptions()); mapped != nil {
			page.Items = append(page.Items, *mapped)
		}
	}
	return page, nil
}

func paginateOptions(opts TimelineOptions) PaginateOptions {
	return PaginateOptions{
		TargetCount:    opts.Count,
		MaxPages:       opts.MaxPages,
		StartCursor:    opts.Cursor,
		InterPageDelay: opts.InterPageDelay,
	}
}

func tweetIdentity(t Tweet) string {
	return t.ID
}
