package twitter

import (
	"context"
	"time"
)

const (
	// DefaultPageSize is the per-request count sent when the caller
	// doesn't specify one.
	DefaultPageSize = 20
	// maxPageCap bounds any single paginated call regardless of what the
	// caller asked for. Capped runs report a resume cursor.
	maxPageCap = 10
)

// Page is the outcome of one successful fetch attempt.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

type FetchPage[T any] func(ctx context.Context, cursor string, count int) (Page[T], error)

type PaginateOptions struct {
	// TargetCount is the number of unique items to accumulate.
	TargetCount int
	// PageSize is the per-request count, DefaultPageSize when zero.
	PageSize int
	// MaxPages overrides the derived page budget. The hard cap applies
	// either way.
	MaxPages int
	// StartCursor resumes a previous capped run.
	StartCursor string
	// InterPageDelay self-throttles between page fetches. It is not a
	// retry backoff.
	InterPageDelay time.Duration
}

type PaginateResult[T any] struct {
	Items []T
	// NextCursor is set only when the run stopped at the page budget
	// with more pages available.
	NextCursor string
}

// Paginate walks cursor pages until the target count is reached, the
// endpoint is exhausted, or the page budget runs out. Items are unique by
// identity in first-seen order. On failure the already-accumulated items
// are preserved in the result so callers can act on partial data.
func Paginate[T any](
	ctx context.Context,
	opts PaginateOptions,
	identity func(T) string,
	fetch FetchPage[T],
) (PaginateResult[T], error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = (opts.TargetCount + pageSize - 1) / pageSize
	}
	if maxPages > maxPageCap {
		maxPages = maxPageCap
	}

	seen := map[string]bool{}
	var items []T
	cursor := opts.StartCursor
	pagesFetched := 0

	for len(items) < opts.TargetCount {
		count := pageSize
		if remaining := opts.TargetCount - len(items); remaining < count {
			count = remaining
		}

		if pagesFetched > 0 && opts.InterPageDelay > 0 {
			select {
			case <-time.After(opts.InterPageDelay):
			case <-ctx.Done():
				return PaginateResult[T]{Items: items, NextCursor: cursor}, ctx.Err()
			}
		}

		page, err := fetch(ctx, cursor, count)
		if err != nil {
			return PaginateResult[T]{Items: items, NextCursor: cursor}, err
		}
		pagesFetched++

		added := 0
		for _, item := range page.Items {
			id := identity(item)
			if seen[id] {
				continue
			}
			seen[id] = true
			items = append(items, item)
			added++
		}

		// no cursor, a stuck cursor, an empty page, or a page of pure
		// duplicates all mean the endpoint has nothing further
		if page.NextCursor == "" || page.NextCursor == cursor ||
			len(page.Items) == 0 || added == 0 {
			return PaginateResult[T]{Items: items}, nil
		}

		if pagesFetched >= maxPages {
			return PaginateResult[T]{Items: items, NextCursor: page.NextCursor}, nil
		}

		cursor = page.NextCursor
	}

	return PaginateResult[T]{Items: items}, nil
}
