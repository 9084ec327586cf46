package twitter

import (
	"context"
	"encoding/json"
	"fmt"
)

// SearchProduct selects which search ranking to page through.
type SearchProduct string

const (
	SearchTop    SearchProduct = "Top"
	SearchLatest SearchProduct = "Latest"
)

type searchTimelineVariables struct {
	RawQuery    string `json:"rawQuery"`
	Count       int    `json:"count"`
	Cursor      string `json:"cursor,omitempty"`
	QuerySource string `json:"querySource"`
	Product     string `json:"product"`
}

type searchTimelineData struct {
	SearchByRawQuery struct {
		SearchTimeline struct {
			Timeline struct {
				Instructions []instruction `json:"instructions"`
			} `json:"timeline"`
		} `json:"search_timeline"`
	} `json:"search_by_raw_query"`
}

// SearchTweets pages through search results for a raw query string.
func (c *Client) SearchTweets(ctx context.Context, query string, product SearchProduct, opts TimelineOptions) (TimelineResult, error) {
	ctx, span := tracer.Start(ctx, "client:SearchTweets")
	defer span.End()

	if product == "" {
		product = SearchLatest
	}

	fetch := func(ctx context.Context, cursor string, count int) (Page[Tweet], error) {
		data, err := c.runOperation(ctx, opSearchTimeline, searchTimelineVariables{
			RawQuery:    query,
			Count:       count,
			Cursor:      cursor,
			QuerySource: "typed_query",
			Product:     string(product),
		})
		if err != nil {
			return Page[Tweet]{}, err
		}

		var parsed searchTimelineData
		if err := json.Unmarshal(data, &parsed); err != nil {
			return Page[Tweet]{}, fmt.Errorf("parse search response: %w", err)
		}
		return c.timelinePage(parsed.SearchByRawQuery.SearchTimeline.Timeline.Instructions)
	}

	result, err := Paginate(ctx, paginateOptions(opts), tweetIdentity, fetch)
	return TimelineResult{Tweets: result.Items, NextCursor: result.NextCursor}, err
}
