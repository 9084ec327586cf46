package twitter

// Operation names and their baked-in default query ids. Query ids rotate
// without notice whenever the platform redeploys its web bundle, so these
// are only the fallback of last resort behind the refreshed overlay.

const (
	opUserByScreenName = "UserByScreenName"
	opUserTweets       = "UserTweets"
	opTweetDetail      = "TweetDetail"
	opSearchTimeline   = "SearchTimeline"
)

var defaultQueryIDs = map[string]string{
	opUserByScreenName: "G3KGOASz96M-Qu0nwmGXNg",
	opUserTweets:       "E3opETHurmVJflFsUBVuUQ",
	opTweetDetail:      "xOhkmRac04YFZmOzU9PJHg",
	opSearchTimeline:   "gkjsKepM6gl_HmFWoWKfgg",
}

// OperationNames lists every known operation, the set a global registry
// refresh re-derives ids for.
func OperationNames() []string {
	names := make([]string, 0, len(defaultQueryIDs))
	for name := range defaultQueryIDs {
		names = append(names, name)
	}
	return names
}

// defaultFeatures is the feature-switch set sent with every operation.
// The API rejects requests that omit switches it currently expects, and
// ignores extras, so this errs on the side of sending everything.
var defaultFeatures = map[string]bool{
	"creator_subscriptions_tweet_preview_api_enabled":                         true,
	"communities_web_enable_tweet_community_results_fetch":                    true,
	"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
	"articles_preview_enabled":                                                true,
	"responsive_web_edit_tweet_api_enabled":                                   true,
	"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
	"view_counts_everywhere_api_enabled":                                      true,
	"longform_notetweets_consumption_enabled":                                 true,
	"responsive_web_twitter_article_tweet_consumption_enabled":                true,
	"tweet_awards_web_tipping_enabled":                                        false,
	"freedom_of_speech_not_reach_fetch_enabled":                               true,
	"standardized_nudges_misinfo":                                             true,
	"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
	"longform_notetweets_rich_text_read_enabled":                              true,
	"longform_notetweets_inline_media_enabled":                                true,
	"profile_label_improvements_pcf_label_in_post_enabled":                    true,
	"rweb_tipjar_consumption_enabled":                                         true,
	"responsive_web_graphql_exclude_directive_enabled":                        true,
	"verified_phone_label_enabled":                                            false,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
	"responsive_web_graphql_timeline_navigation_enabled":                      true,
	"responsive_web_enhance_cards_enabled":                                    false,
}

var defaultFieldToggles = map[string]bool{
	"withArticlePlainText": false,
}
