package twitter

import (
	"context"
	"encoding/json"
	"fmt"
)

type tweetDetailVariables struct {
	FocalTweetID           string `json:"focalTweetId"`
	Cursor                 string `json:"cursor,omitempty"`
	WithRuxInjections      bool   `json:"with_rux_injections"`
	IncludePromotedContent bool   `json:"includePromotedContent"`
	WithCommunity          bool   `json:"withCommunity"`
	WithBirdwatchNotes     bool   `json:"withBirdwatchNotes"`
	WithVoice              bool   `json:"withVoice"`
	WithV2Timeline         bool   `json:"withV2Timeline"`
}

type tweetDetailData struct {
	ThreadedConversation *struct {
		Instructions []instruction `json:"instructions"`
	} `json:"threaded_conversation_with_injections_v2"`
}

// GetTweetThread fetches the conversation around a tweet. The focal tweet
// is included, pagination walks the "show more" cursor at the bottom of
// the thread.
func (c *Client) GetTweetThread(ctx context.Context, tweetID string, opts TimelineOptions) (TimelineResult, error) {
	ctx, span := tracer.Start(ctx, "client:GetTweetThread")
	defer span.End()

	fetch := func(ctx context.Context, cursor string, count int) (Page[Tweet], error) {
		data, err := c.runOperation(ctx, opTweetDetail, tweetDetailVariables{
			FocalTweetID:   tweetID,
			Cursor:         cursor,
			WithVoice:      true,
			WithV2Timeline: true,
		})
		if err != nil {
			return Page[Tweet]{}, err
		}

		var parsed tweetDetailData
		if err := json.Unmarshal(data, &parsed); err != nil {
			return Page[Tweet]{}, fmt.Errorf("parse tweet detail response: %w", err)
		}
		if parsed.ThreadedConversation == nil {
			return Page[Tweet]{}, nil
		}
		return c.timelinePage(parsed.ThreadedConversation.Instructions)
	}

	result, err := Paginate(ctx, paginateOptions(opts), tweetIdentity, fetch)
	return TimelineResult{Tweets: result.Items, NextCursor: result.NextCursor}, err
}

// GetTweet fetches a single tweet by id. One page of the thread is enough,
// the focal tweet always appears on the first page.
func (c *Client) GetTweet(ctx context.Context, tweetID string) (Tweet, error) {
	result, err := c.GetTweetThread(ctx, tweetID, TimelineOptions{Count: DefaultPageSize, MaxPages: 1})
	if err != nil {
		return Tweet{}, err
	}
	for _, t := range result.Tweets {
		if t.ID == tweetID {
			return t, nil
		}
	}
	return Tweet{}, fmt.Errorf("tweet %q not found", tweetID)
}
