package twitter

import "encoding/json"

// Wire structs mirroring the timeline payload. The API ships the same logical
// object in several nesting shapes depending on endpoint and entry kind, so
// most fields here are optional branches probed by normalize.go.

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type instruction struct {
	Type    string  `json:"type"`
	Entries []entry `json:"entries"`
	// TimelinePinEntry / TimelineReplaceEntry carry a single entry.
	Entry *entry `json:"entry"`
	// TimelineAddToModule carries items without an enclosing entry.
	ModuleItems []moduleItem `json:"moduleItems"`
}

type entry struct {
	EntryID   string       `json:"entryId"`
	SortIndex string       `json:"sortIndex"`
	Content   entryContent `json:"content"`
}

type entryContent struct {
	EntryType string `json:"entryType"`
	Typename  string `json:"__typename"`

	// shape 1: payload directly on the entry
	ItemContent *itemContent `json:"itemContent"`
	// shape 2: payload behind an "item" wrapper
	Item *itemWrapper `json:"item"`
	// shape 3: a module entry with independently shaped sub-items
	Items []moduleItem `json:"items"`

	// cursor entries
	Value      string `json:"value"`
	CursorType string `json:"cursorType"`
}

type itemWrapper struct {
	ItemContent *itemContent `json:"itemContent"`
}

type moduleItem struct {
	EntryID string       `json:"entryId"`
	Item    *itemWrapper `json:"item"`
	// some module payloads skip the wrapper
	ItemContent *itemContent `json:"itemContent"`
}

type itemContent struct {
	ItemType     string        `json:"itemType"`
	Typename     string        `json:"__typename"`
	TweetResults *tweetResults `json:"tweet_results"`

	Value      string `json:"value"`
	CursorType string `json:"cursorType"`
}

type tweetResults struct {
	Result *tweetResult `json:"result"`
}

type tweetResult struct {
	Typename string `json:"__typename"`
	// visibility-limited wrapper, the real tweet is one level down
	Tweet *tweetResult `json:"tweet"`

	RestID             string          `json:"rest_id"`
	Core               *tweetCore      `json:"core"`
	Legacy             *legacyTweet    `json:"legacy"`
	NoteTweet          *noteTweet      `json:"note_tweet"`
	Article            *articleWrapper `json:"article"`
	QuotedStatusResult *tweetResults   `json:"quoted_status_result"`
	Views              *viewCounts     `json:"views"`

	raw json.RawMessage
}

// capture the raw bytes alongside the decoded fields so the mapper can
// echo the original payload when asked to
func (t *tweetResult) UnmarshalJSON(b []byte) error {
	type plain tweetResult
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*t = tweetResult(p)
	t.raw = append(t.raw[:0], b...)
	return nil
}

type tweetCore struct {
	UserResults *userResults `json:"user_results"`
}

type userResults struct {
	Result *userResult `json:"result"`
}

type userResult struct {
	Typename string      `json:"__typename"`
	RestID   string      `json:"rest_id"`
	Core     *userCore   `json:"core"`
	Legacy   *legacyUser `json:"legacy"`
}

type userCore struct {
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
}

type legacyUser struct {
	Name           string `json:"name"`
	ScreenName     string `json:"screen_name"`
	Description    string `json:"description"`
	FollowersCount int    `json:"followers_count"`
	FriendsCount   int    `json:"friends_count"`
	StatusesCount  int    `json:"statuses_count"`
}

type legacyTweet struct {
	IDStr         string `json:"id_str"`
	FullText      string `json:"full_text"`
	CreatedAt     string `json:"created_at"`
	FavoriteCount int    `json:"favorite_count"`
	RetweetCount  int    `json:"retweet_count"`
	ReplyCount    int    `json:"reply_count"`
	QuoteCount    int    `json:"quote_count"`
	BookmarkCount int    `json:"bookmark_count"`

	ConversationIDStr    string `json:"conversation_id_str"`
	InReplyToStatusIDStr string `json:"in_reply_to_status_id_str"`
	InReplyToScreenName  string `json:"in_reply_to_screen_name"`

	Entities         *tweetEntities `json:"entities"`
	ExtendedEntities *tweetEntities `json:"extended_entities"`
}

type tweetEntities struct {
	Media []mediaEntity `json:"media"`
}

type mediaEntity struct {
	IDStr         string     `json:"id_str"`
	Type          string     `json:"type"`
	MediaURLHTTPS string     `json:"media_url_https"`
	ExpandedURL   string     `json:"expanded_url"`
	ExtAltText    string     `json:"ext_alt_text"`
	VideoInfo     *videoInfo `json:"video_info"`
}

type videoInfo struct {
	Variants []videoVariant `json:"variants"`
}

type videoVariant struct {
	Bitrate     int    `json:"bitrate"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

type viewCounts struct {
	Count string `json:"count"`
}

// Long-form notes moved the text around a few times, every known location
// is declared here and probed in order by content.go.
type noteTweet struct {
	NoteTweetResults *noteTweetResults `json:"note_tweet_results"`
	Text             string            `json:"text"`
}

type noteTweetResults struct {
	Result *noteTweetResult `json:"result"`
	Text   string           `json:"text"`
}

type noteTweetResult struct {
	Text string `json:"text"`
}

type articleWrapper struct {
	ArticleResults *articleResults `json:"article_results"`
}

type articleResults struct {
	Result *articleResult `json:"result"`
}

type articleResult struct {
	RestID       string        `json:"rest_id"`
	Title        string        `json:"title"`
	PreviewText  string        `json:"preview_text"`
	ContentState *contentState `json:"content_state"`
}

// contentState is the draft.js style rich document behind articles.
type contentState struct {
	Blocks    []contentBlock           `json:"blocks"`
	EntityMap map[string]contentEntity `json:"entityMap"`
}

type contentBlock struct {
	Key          string        `json:"key"`
	Text         string        `json:"text"`
	Type         string        `json:"type"`
	EntityRanges []entityRange `json:"entityRanges"`
}

type entityRange struct {
	Key    int `json:"key"`
	Offset int `json:"offset"`
	Length int `json:"length"`
}

type contentEntity struct {
	Type string            `json:"type"`
	Data contentEntityData `json:"data"`
}

type contentEntityData struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	Code     string `json:"code"`
	TweetID  string `json:"tweetId"`
}
