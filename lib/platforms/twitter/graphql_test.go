package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeRefreshSource struct {
	ids   map[string]string
	err   error
	calls int
}

func (s *fakeRefreshSource) FetchQueryIDs(ctx context.Context, names []string) (map[string]string, error) {
	s.calls++
	return s.ids, s.err
}

func newTestClient(t *testing.T, baseURL string, source RefreshSource) *Client {
	client, err := NewClient(ClientOptions{
		Credentials:   Credentials{AuthToken: "auth", CSRFToken: "csrf"},
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
		RefreshSource: source,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

const userResponse = `{"data":{"user":{"result":{
	"rest_id":"u1",
	"core":{"name":"Alice","screen_name":"alice"},
	"legacy":{"followers_count":12}
}}}}`

// queryIDOf pulls the query id out of a /graphql/{id}/{op} path.
func queryIDOf(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

func TestRunOperationRefreshOnStale(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if queryIDOf(r.URL.Path) != "fresh-id" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, userResponse)
	}))
	defer server.Close()

	source := &fakeRefreshSource{ids: map[string]string{opUserByScreenName: "fresh-id"}}
	client := newTestClient(t, server.URL, source)

	user, err := client.GetUserByScreenName(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, 1, source.calls)
	// one stale default, then the refreshed id
	require.Equal(t, 2, requests)
}

func TestRunOperationExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	source := &fakeRefreshSource{err: fmt.Errorf("bundle unreachable")}
	client := newTestClient(t, server.URL, source)

	_, err := client.GetUserByScreenName(context.Background(), "alice")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStaleQueryID))
	// the refresh failure is swallowed, the second pass still happens
	require.Equal(t, 1, source.calls)
}

func TestRunOperationHardErrorNotRetried(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"errors":[{"message":"Rate limit exceeded"}]}`)
	}))
	defer server.Close()

	source := &fakeRefreshSource{}
	client := newTestClient(t, server.URL, source)

	_, err := client.GetUserByScreenName(context.Background(), "alice")
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusTooManyRequests, httpErr.Status)
	require.Contains(t, httpErr.Snippet, "Rate limit exceeded")

	// non-404 failures surface immediately, no fallback, no refresh
	require.Equal(t, 1, requests)
	require.Equal(t, 0, source.calls)
}

func TestRunOperationAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{},"errors":[{"message":"Something went wrong"}]}`)
	}))
	defer server.Close()

	source := &fakeRefreshSource{}
	client := newTestClient(t, server.URL, source)

	_, err := client.GetUserByScreenName(context.Background(), "alice")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 0, source.calls)
}

func TestRunOperationNotFoundAPIErrorAliasesStale(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if queryIDOf(r.URL.Path) != "fresh-id" {
			fmt.Fprint(w, `{"errors":[{"message":"Query 'UserByScreenName' not found"}]}`)
			return
		}
		fmt.Fprint(w, userResponse)
	}))
	defer server.Close()

	source := &fakeRefreshSource{ids: map[string]string{opUserByScreenName: "fresh-id"}}
	client := newTestClient(t, server.URL, source)

	user, err := client.GetUserByScreenName(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "alice", user.ScreenName)
	require.Equal(t, 1, source.calls)
}

func TestRunOperationMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>definitely not json</html>`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeRefreshSource{})
	_, err := client.GetUserByScreenName(context.Background(), "alice")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrStaleQueryID))
}

func timelineEntryJSON(id, name string) string {
	return fmt.Sprintf(`{
		"entryId": "tweet-%s",
		"content": {
			"entryType": "TimelineTimelineItem",
			"itemContent": {
				"itemType": "TimelineTweet",
				"tweet_results": {"result": {
					"rest_id": %q,
					"core": {"user_results": {"result": {
						"rest_id": "u1",
						"core": {"name": %q, "screen_name": "alice"}
					}}},
					"legacy": {"full_text": "tweet %s"}
				}}
			}
		}
	}`, id, id, name, id)
}

func cursorEntryJSON(value string) string {
	return fmt.Sprintf(`{
		"entryId": "cursor-bottom",
		"content": {"entryType": "TimelineTimelineCursor", "cursorType": "Bottom", "value": %q}
	}`, value)
}

func timelinePageJSON(cursor string, entries ...string) string {
	if cursor != "" {
		entries = append(entries, cursorEntryJSON(cursor))
	}
	return fmt.Sprintf(`{"data":{"user":{"result":{"timeline_v2":{"timeline":{
		"instructions":[{"type":"TimelineAddEntries","entries":[%s]}]
	}}}}}}`, strings.Join(entries, ","))
}

func TestGetUserTweetsPaginates(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++

		var variables struct {
			Cursor string `json:"cursor"`
		}
		if err := json.Unmarshal([]byte(r.URL.Query().Get("variables")), &variables); err != nil {
			t.Error(err)
		}

		switch variables.Cursor {
		case "":
			fmt.Fprint(w, timelinePageJSON("c1",
				timelineEntryJSON("t1", "Alice"),
				timelineEntryJSON("t2", "Alice"),
			))
		case "c1":
			fmt.Fprint(w, timelinePageJSON("",
				timelineEntryJSON("t2", "Alice"),
				timelineEntryJSON("t3", "Alice"),
			))
		default:
			t.Errorf("unexpected cursor %q", variables.Cursor)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeRefreshSource{})
	result, err := client.GetUserTweets(context.Background(), "u1", TimelineOptions{Count: 30})
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 2, fetches)
	require.Empty(t, result.NextCursor)
	require.Len(t, result.Tweets, 3)
	require.Equal(t, "t1", result.Tweets[0].ID)
	require.Equal(t, "t2", result.Tweets[1].ID)
	require.Equal(t, "t3", result.Tweets[2].ID)
	require.Equal(t, "tweet t1", result.Tweets[0].Text)
	require.Equal(t, "Alice", result.Tweets[0].Author.Name)
}
