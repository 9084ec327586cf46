package twitter

// Timeline entries carry their payload in at least four different nesting
// shapes. Every shape is probed for every entry and the results are unioned,
// assuming one canonical shape silently drops tweets on the others.

const cursorTypeBottom = "Bottom"

type entryShape func(*entryContent) []*tweetResult

var entryShapes = []entryShape{
	shapeItemContent,
	shapeItemWrapper,
	shapeSubItems,
}

// collectTimeline flattens an instruction array into raw tweet results in
// timeline order plus the bottom pagination cursor, if any.
func collectTimeline(instructions []instruction) ([]*tweetResult, string) {
	var results []*tweetResult
	var cursor string
	seen := map[string]bool{}

	add := func(candidates []*tweetResult) {
		for _, t := range candidates {
			t = unwrapVisibility(t)
			if t == nil {
				continue
			}
			id := tweetID(t)
			if id == "" || resolveAuthor(t) == nil {
				// absence of social metadata is expected, not exceptional
				continue
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			results = append(results, t)
		}
	}

	handleEntry := func(e *entry) {
		if e == nil {
			return
		}
		if c := entryCursor(&e.Content); c != "" {
			cursor = c
			return
		}
		for _, shape := range entryShapes {
			add(shape(&e.Content))
		}
	}

	for i := range instructions {
		ins := &instructions[i]
		for j := range ins.Entries {
			handleEntry(&ins.Entries[j])
		}
		handleEntry(ins.Entry)
		// shape 4: module items attached directly to the instruction
		for j := range ins.ModuleItems {
			add(moduleItemResults(&ins.ModuleItems[j]))
		}
	}

	return results, cursor
}

func shapeItemContent(c *entryContent) []*tweetResult {
	return itemContentResult(c.ItemContent)
}

func shapeItemWrapper(c *entryContent) []*tweetResult {
	if c.Item == nil {
		return nil
	}
	return itemContentResult(c.Item.ItemContent)
}

func shapeSubItems(c *entryContent) []*tweetResult {
	var out []*tweetResult
	for i := range c.Items {
		out = append(out, moduleItemResults(&c.Items[i])...)
	}
	return out
}

func moduleItemResults(m *moduleItem) []*tweetResult {
	var out []*tweetResult
	if m.Item != nil {
		out = append(out, itemContentResult(m.Item.ItemContent)...)
	}
	out = append(out, itemContentResult(m.ItemContent)...)
	return out
}

func itemContentResult(ic *itemContent) []*tweetResult {
	if ic == nil || ic.TweetResults == nil || ic.TweetResults.Result == nil {
		return nil
	}
	return []*tweetResult{ic.TweetResults.Result}
}

// entryCursor pulls a bottom cursor out of either cursor entry shape.
func entryCursor(c *entryContent) string {
	if c.CursorType == cursorTypeBottom && c.Value != "" {
		return c.Value
	}
	if c.ItemContent != nil && c.ItemContent.CursorType == cursorTypeBottom {
		return c.ItemContent.Value
	}
	return ""
}

// unwrapVisibility reaches through one level of visibility-limited wrapper.
func unwrapVisibility(t *tweetResult) *tweetResult {
	if t == nil {
		return nil
	}
	if t.Typename == "TweetWithVisibilityResults" && t.Tweet != nil {
		return t.Tweet
	}
	return t
}

func tweetID(t *tweetResult) string {
	if t.RestID != "" {
		return t.RestID
	}
	if t.Legacy != nil {
		return t.Legacy.IDStr
	}
	return ""
}

// resolveAuthor prefers the current user representation and falls back to
// the legacy one. Returns nil when no display name is resolvable, which
// drops the candidate.
func resolveAuthor(t *tweetResult) *Author {
	if t.Core == nil || t.Core.UserResults == nil || t.Core.UserResults.Result == nil {
		return nil
	}
	u := t.Core.UserResults.Result
	a := Author{ID: u.RestID}
	if u.Core != nil {
		a.Name = u.Core.Name
		a.ScreenName = u.Core.ScreenName
	}
	if a.Name == "" && u.Legacy != nil {
		a.Name = u.Legacy.Name
	}
	if a.ScreenName == "" && u.Legacy != nil {
		a.ScreenName = u.Legacy.ScreenName
	}
	if a.Name == "" {
		return nil
	}
	return &a
}
