package twitter

import (
	"encoding/json"
	"time"
)

// Tweet is the stable output record produced by the normalization pipeline.
// ID and Author.Name are always present, everything else is best-effort
// because the wire format omits fields freely.
type Tweet struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Author    Author     `json:"author"`
	CreatedAt *time.Time `json:"created_at,omitempty"`

	Counts *EngagementCounts `json:"counts,omitempty"`

	ConversationID string `json:"conversation_id,omitempty"`
	InReplyToID    string `json:"in_reply_to_id,omitempty"`
	InReplyToUser  string `json:"in_reply_to_user,omitempty"`

	Media   []Media      `json:"media,omitempty"`
	Article *ArticleMeta `json:"article,omitempty"`

	QuotedTweet *Tweet `json:"quoted_tweet,omitempty"`

	// Raw echoes the wire payload this record was mapped from,
	// only populated when the client was configured to keep it.
	Raw json.RawMessage `json:"raw,omitempty"`
}

type Author struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	ScreenName string `json:"screen_name,omitempty"`
}

type EngagementCounts struct {
	Likes     int `json:"likes"`
	Retweets  int `json:"retweets"`
	Replies   int `json:"replies"`
	Quotes    int `json:"quotes"`
	Bookmarks int `json:"bookmarks,omitempty"`
	Views     int `json:"views,omitempty"`
}

type Media struct {
	Type       string `json:"type"`
	URL        string `json:"url"`
	PreviewURL string `json:"preview_url,omitempty"`
	AltText    string `json:"alt_text,omitempty"`
}

type ArticleMeta struct {
	Title       string `json:"title"`
	PreviewText string `json:"preview_text,omitempty"`
}

// User is the stable record for profile lookups.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ScreenName     string `json:"screen_name"`
	Description    string `json:"description,omitempty"`
	FollowersCount int    `json:"followers_count,omitempty"`
	FollowingCount int    `json:"following_count,omitempty"`
	TweetCount     int    `json:"tweet_count,omitempty"`
}
