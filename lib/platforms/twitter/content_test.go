package twitter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func legacyOnly(text string) *tweetResult {
	return &tweetResult{Legacy: &legacyTweet{FullText: text}}
}

func TestTextPriorityLegacyOnly(t *testing.T) {
	require.Equal(t, "hello world", extractText(legacyOnly("hello world")))
}

func TestTextPriorityRichDocumentWins(t *testing.T) {
	tweet := &tweetResult{
		Legacy: &legacyTweet{FullText: "legacy text"},
		Article: &articleWrapper{ArticleResults: &articleResults{Result: &articleResult{
			ContentState: &contentState{
				Blocks: []contentBlock{{Text: "rich text", Type: "unstyled"}},
			},
		}}},
	}
	require.Equal(t, "rich text", extractText(tweet))
}

func TestTextPriorityNoteOverLegacy(t *testing.T) {
	tweet := &tweetResult{
		Legacy: &legacyTweet{FullText: "truncated legacy..."},
		NoteTweet: &noteTweet{NoteTweetResults: &noteTweetResults{
			Result: &noteTweetResult{Text: "the full note"},
		}},
	}
	require.Equal(t, "the full note", extractText(tweet))
}

func TestNoteTextFieldVariants(t *testing.T) {
	for _, tc := range []struct {
		name string
		note *noteTweet
	}{
		{"result text", &noteTweet{NoteTweetResults: &noteTweetResults{Result: &noteTweetResult{Text: "note"}}}},
		{"results text", &noteTweet{NoteTweetResults: &noteTweetResults{Text: "note"}}},
		{"flat text", &noteTweet{Text: "note"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, "note", extractText(&tweetResult{NoteTweet: tc.note}))
		})
	}
}

func TestRenderOrderedListReset(t *testing.T) {
	cs := &contentState{
		Blocks: []contentBlock{
			{Text: "X", Type: "ordered-list-item"},
			{Text: "Y", Type: "ordered-list-item"},
			{Text: "Z", Type: "unstyled"},
			{Text: "W", Type: "ordered-list-item"},
		},
	}
	require.Equal(t, "1. X\n\n2. Y\n\nZ\n\n1. W", renderContentState(cs))
}

func TestRenderBlockStyles(t *testing.T) {
	cs := &contentState{
		Blocks: []contentBlock{
			{Text: "Title", Type: "header-one"},
			{Text: "Sub", Type: "header-two"},
			{Text: "Deep", Type: "header-three"},
			{Text: "bullet", Type: "unordered-list-item"},
			{Text: "said", Type: "blockquote"},
			{Text: "   ", Type: "unstyled"},
			{Text: "plain", Type: "unstyled"},
		},
	}
	require.Equal(t, "# Title\n\n## Sub\n\n### Deep\n\n- bullet\n\n> said\n\nplain", renderContentState(cs))
}

func TestRenderLinkEntityRanges(t *testing.T) {
	cs := &contentState{
		Blocks: []contentBlock{{
			Text: "see here and there",
			Type: "unstyled",
			EntityRanges: []entityRange{
				{Key: 0, Offset: 4, Length: 4},
				{Key: 1, Offset: 13, Length: 5},
			},
		}},
		EntityMap: map[string]contentEntity{
			"0": {Type: "LINK", Data: contentEntityData{URL: "https://a.example"}},
			"1": {Type: "LINK", Data: contentEntityData{URL: "https://b.example"}},
		},
	}
	require.Equal(
		t,
		"see [here](https://a.example) and [there](https://b.example)",
		renderContentState(cs),
	)
}

func TestRenderLinkEntityRangeMalformedBounds(t *testing.T) {
	// ranges the wire can't be trusted to keep sane are skipped, never applied
	cs := &contentState{
		Blocks: []contentBlock{{
			Text: "see here and there",
			Type: "unstyled",
			EntityRanges: []entityRange{
				{Key: 0, Offset: 4, Length: -3},
				{Key: 1, Offset: -1, Length: 4},
				{Key: 2, Offset: 10, Length: 100},
				{Key: 3, Offset: 13, Length: 5},
			},
		}},
		EntityMap: map[string]contentEntity{
			"0": {Type: "LINK", Data: contentEntityData{URL: "https://a.example"}},
			"1": {Type: "LINK", Data: contentEntityData{URL: "https://b.example"}},
			"2": {Type: "LINK", Data: contentEntityData{URL: "https://c.example"}},
			"3": {Type: "LINK", Data: contentEntityData{URL: "https://d.example"}},
		},
	}
	require.Equal(t, "see here and [there](https://d.example)", renderContentState(cs))
}

func TestRenderAtomicEntities(t *testing.T) {
	atomic := func(key int) contentBlock {
		return contentBlock{Text: " ", Type: "atomic", EntityRanges: []entityRange{{Key: key}}}
	}
	cs := &contentState{
		Blocks: []contentBlock{
			atomic(0), atomic(1), atomic(2), atomic(3), atomic(4), atomic(5),
		},
		EntityMap: map[string]contentEntity{
			"0": {Type: "MARKDOWN", Data: contentEntityData{Markdown: "**raw** markdown"}},
			"1": {Type: "DIVIDER"},
			"2": {Type: "TWEET", Data: contentEntityData{TweetID: "42"}},
			"3": {Type: "LINK", Data: contentEntityData{URL: "https://x.example", Title: "a page"}},
			"4": {Type: "MEDIA"},
			// key 5 is missing from the entity map on purpose
		},
	}
	require.Equal(
		t,
		"**raw** markdown\n\n---\n\n[tweet](https://x.com/i/status/42)\n\n[a page](https://x.example)\n\n[image]",
		renderContentState(cs),
	)
}

func TestRenderEmptyDocument(t *testing.T) {
	cs := &contentState{
		Blocks: []contentBlock{
			{Text: "  ", Type: "unstyled"},
			{Text: " ", Type: "atomic"},
		},
	}
	// a document that exists but renders nothing is not an empty string,
	// so the extractor chain doesn't fall through past it
	require.Equal(t, "no content", renderContentState(cs))
}

func TestComposeTitle(t *testing.T) {
	require.Equal(t, "Title\n\nbody", composeText("Title", "body"))
	require.Equal(t, "Title\n\nbody", composeText("", "Title\n\nbody"))
	require.Equal(t, "Title", composeText("Title", "Title"))
	require.Equal(t, "Title already here", composeText("Title", "Title already here"))
	require.Equal(t, "Title", composeText("Title", ""))
}

func TestArticleTitlePrefixed(t *testing.T) {
	tweet := &tweetResult{
		Article: &articleWrapper{ArticleResults: &articleResults{Result: &articleResult{
			Title: "My Article",
			ContentState: &contentState{
				Blocks: []contentBlock{{Text: "body text", Type: "unstyled"}},
			},
		}}},
	}
	require.Equal(t, "My Article\n\nbody text", extractText(tweet))
}
