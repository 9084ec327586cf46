package twitter

import (
	"errors"
	"fmt"
	"strings"

	"birdwatch/lib/textutil"
)

// ErrStaleQueryID marks a candidate query id the API no longer recognizes.
// It never escapes runOperation directly, only wrapped in the exhausted error
// after refresh and retry also failed.
var ErrStaleQueryID = errors.New("query id no longer recognized")

type HTTPError struct {
	Status  int
	Snippet string
}

func (e *HTTPError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Snippet)
}

// APIError carries the application-level error list found in an
// otherwise successful response body.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	return "api error: " + strings.Join(e.Messages, "; ")
}

// isNotFoundMessage reports whether an application error aliases a stale
// query id, the one failure class the executor can recover from.
func isNotFoundMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "not found")
}

func newHTTPError(status int, body []byte) *HTTPError {
	return &HTTPError{
		Status:  status,
		Snippet: textutil.Snippet(string(body), 200),
	}
}
