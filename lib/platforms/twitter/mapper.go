package twitter

import (
	"strconv"
	"time"
)

// createdAtLayout is the legacy ruby-style timestamp format.
const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

type mapOptions struct {
	// quoteDepth is the remaining budget for resolving quoted tweets,
	// passed by value and decremented at each recursion step. The wire
	// format does not guarantee acyclicity, this does.
	quoteDepth int
	includeRaw bool
}

// mapTweet converts one raw tweet result into the stable output record.
// Returns nil when the candidate lacks an identity or an author display
// name, such candidates are dropped, never surfaced as partial records.
func mapTweet(t *tweetResult, opts mapOptions) *Tweet {
	t = unwrapVisibility(t)
	if t == nil {
		return nil
	}

	id := tweetID(t)
	author := resolveAuthor(t)
	if id == "" || author == nil {
		return nil
	}

	out := &Tweet{
		ID:     id,
		Text:   extractText(t),
		Author: *author,
	}

	if legacy := t.Legacy; legacy != nil {
		if ts, err := time.Parse(createdAtLayout, legacy.CreatedAt); err == nil {
			out.CreatedAt = &ts
		}
		out.Counts = &EngagementCounts{
			Likes:     legacy.FavoriteCount,
			Retweets:  legacy.RetweetCount,
			Replies:   legacy.ReplyCount,
			Quotes:    legacy.QuoteCount,
			Bookmarks: legacy.BookmarkCount,
		}
		out.ConversationID = legacy.ConversationIDStr
		out.InReplyToID = legacy.InReplyToStatusIDStr
		out.InReplyToUser = legacy.InReplyToScreenName
		out.Media = mapMedia(legacy)
	}

	if t.Views != nil && t.Views.Count != "" {
		if views, err := strconv.Atoi(t.Views.Count); err == nil {
			if out.Counts == nil {
				out.Counts = &EngagementCounts{}
			}
			out.Counts.Views = views
		}
	}

	if a := articleOf(t); a != nil {
		out.Article = &ArticleMeta{
			Title:       a.Title,
			PreviewText: a.PreviewText,
		}
	}

	if opts.quoteDepth > 0 && t.QuotedStatusResult != nil && t.QuotedStatusResult.Result != nil {
		quoted := opts
		quoted.quoteDepth--
		out.QuotedTweet = mapTweet(t.QuotedStatusResult.Result, quoted)
	}

	if opts.includeRaw {
		out.Raw = t.raw
	}

	return out
}

// mapMedia prefers extended_entities over entities, the former carries the
// richer media descriptors when both are present.
func mapMedia(legacy *legacyTweet) []Media {
	source := legacy.Entities
	if legacy.ExtendedEntities != nil && len(legacy.ExtendedEntities.Media) > 0 {
		source = legacy.ExtendedEntities
	}
	if source == nil || len(source.Media) == 0 {
		return nil
	}

	media := make([]Media, 0, len(source.Media))
	for i := range source.Media {
		m := &source.Media[i]
		entry := Media{
			Type:    m.Type,
			URL:     m.MediaURLHTTPS,
			AltText: m.ExtAltText,
		}
		if m.VideoInfo != nil && len(m.VideoInfo.Variants) > 0 {
			entry.URL = bestVariant(m.VideoInfo.Variants).URL
			entry.PreviewURL = m.MediaURLHTTPS
		}
		media = append(media, entry)
	}
	return media
}

// bestVariant picks the variant with the highest declared bitrate, falling
// back to the first one when no variant declares a bitrate.
func bestVariant(variants []videoVariant) videoVariant {
	best := variants[0]
	for _, v := range variants[1:] {
		if v.Bitrate > best.Bitrate {
			best = v
		}
	}
	return best
}

func mapUser(u *userResult) *User {
	if u == nil || u.RestID == "" {
		return nil
	}
	out := &User{ID: u.RestID}
	if u.Core != nil {
		out.Name = u.Core.Name
		out.ScreenName = u.Core.ScreenName
	}
	if legacy := u.Legacy; legacy != nil {
		if out.Name == "" {
			out.Name = legacy.Name
		}
		if out.ScreenName == "" {
			out.ScreenName = legacy.ScreenName
		}
		out.Description = legacy.Description
		out.FollowersCount = legacy.FollowersCount
		out.FollowingCount = legacy.FriendsCount
		out.TweetCount = legacy.StatusesCount
	}
	if out.Name == "" {
		return nil
	}
	return out
}
