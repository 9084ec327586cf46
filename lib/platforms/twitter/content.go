package twitter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Display text resolution is a strict priority chain: the article's rich
// document, then the long-form note text (wherever it lives this week),
// then the legacy flat field. First non-empty result wins.

var textExtractors = []func(*tweetResult) string{
	articleText,
	noteText,
	legacyText,
}

func extractText(t *tweetResult) string {
	var body string
	for _, extract := range textExtractors {
		if body = extract(t); body != "" {
			break
		}
	}
	return composeText(articleTitle(t), body)
}

// composeText prefixes the title unless the body already carries it.
func composeText(title, body string) string {
	if title == "" {
		return body
	}
	if body == "" || body == title {
		return title
	}
	if strings.HasPrefix(body, title) {
		return body
	}
	return title + "\n\n" + body
}

func articleTitle(t *tweetResult) string {
	if a := articleOf(t); a != nil {
		return a.Title
	}
	return ""
}

func articleOf(t *tweetResult) *articleResult {
	if t.Article == nil || t.Article.ArticleResults == nil {
		return nil
	}
	return t.Article.ArticleResults.Result
}

func articleText(t *tweetResult) string {
	a := articleOf(t)
	if a == nil || a.ContentState == nil {
		return ""
	}
	return renderContentState(a.ContentState)
}

func noteText(t *tweetResult) string {
	n := t.NoteTweet
	if n == nil {
		return ""
	}
	if r := n.NoteTweetResults; r != nil {
		if r.Result != nil && r.Result.Text != "" {
			return r.Result.Text
		}
		if r.Text != "" {
			return r.Text
		}
	}
	return n.Text
}

func legacyText(t *tweetResult) string {
	if t.Legacy == nil {
		return ""
	}
	return t.Legacy.FullText
}

// renderContentState renders the block document into linear markdown-ish
// text. A document that produces no output at all renders as "no content"
// rather than an empty string, so the extractor chain does not fall through
// past a document that genuinely exists.
func renderContentState(cs *contentState) string {
	var blocks []string
	ordered := 0

	for i := range cs.Blocks {
		b := &cs.Blocks[i]

		if b.Type != "ordered-list-item" {
			ordered = 0
		}

		var rendered string
		if b.Type == "atomic" {
			rendered = renderAtomicBlock(b, cs.EntityMap)
		} else {
			text := blockText(b, cs.EntityMap)
			if strings.TrimSpace(text) == "" {
				continue
			}
			switch b.Type {
			case "header-one":
				rendered = "# " + text
			case "header-two":
				rendered = "## " + text
			case "header-three":
				rendered = "### " + text
			case "unordered-list-item":
				rendered = "- " + text
			case "ordered-list-item":
				ordered++
				rendered = fmt.Sprintf("%d. %s", ordered, text)
			case "blockquote":
				rendered = "> " + text
			default:
				rendered = text
			}
		}

		if strings.TrimSpace(rendered) == "" {
			continue
		}
		blocks = append(blocks, rendered)
	}

	if len(blocks) == 0 {
		return "no content"
	}
	return strings.Join(blocks, "\n\n")
}

// blockText applies link entity ranges to the block's text, rewriting each
// linked span as [text](url). Ranges are processed in descending offset
// order so earlier rewrites don't shift the offsets of later ones.
func blockText(b *contentBlock, entities map[string]contentEntity) string {
	if len(b.EntityRanges) == 0 {
		return b.Text
	}

	ranges := make([]entityRange, len(b.EntityRanges))
	copy(ranges, b.EntityRanges)
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Offset > ranges[j].Offset
	})

	runes := []rune(b.Text)
	for _, r := range ranges {
		ent, ok := entities[strconv.Itoa(r.Key)]
		if !ok || ent.Type != "LINK" || ent.Data.URL == "" {
			continue
		}
		if r.Offset < 0 || r.Length <= 0 || r.Offset+r.Length > len(runes) {
			continue
		}
		linked := fmt.Sprintf("[%s](%s)", string(runes[r.Offset:r.Offset+r.Length]), ent.Data.URL)
		runes = append(runes[:r.Offset], append([]rune(linked), runes[r.Offset+r.Length:]...)...)
	}
	return string(runes)
}

// renderAtomicBlock resolves a placeholder block through its single
// referenced entity. Unresolvable references produce no output.
func renderAtomicBlock(b *contentBlock, entities map[string]contentEntity) string {
	if len(b.EntityRanges) == 0 {
		return ""
	}
	ent, ok := entities[strconv.Itoa(b.EntityRanges[0].Key)]
	if !ok {
		return ""
	}

	switch ent.Type {
	case "MARKDOWN":
		return ent.Data.Markdown
	case "CODE":
		return ent.Data.Code
	case "DIVIDER":
		return "---"
	case "TWEET":
		if ent.Data.TweetID == "" {
			return ""
		}
		return fmt.Sprintf("[tweet](https://x.com/i/status/%s)", ent.Data.TweetID)
	case "LINK":
		if ent.Data.URL == "" {
			return ""
		}
		title := ent.Data.Title
		if title == "" {
			title = ent.Data.URL
		}
		return fmt.Sprintf("[%s](%s)", title, ent.Data.URL)
	case "MEDIA", "IMAGE":
		return "[image]"
	}
	return ""
}
