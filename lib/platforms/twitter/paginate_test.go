package twitter

import (
	"context"
	"fmt"
	"testing"

	"birdwatch/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func stringIdentity(s string) string { return s }

func TestPaginateTwoPages(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:paginate")
	defer cleanup()

	pages := []Page[string]{
		{Items: []string{"A", "B"}, NextCursor: "c1"},
		{Items: []string{"B", "C"}},
	}
	fetches := 0
	fetch := func(ctx context.Context, cursor string, count int) (Page[string], error) {
		page := pages[fetches]
		fetches++
		return page, nil
	}

	result, err := Paginate(context.Background(), PaginateOptions{TargetCount: 10}, stringIdentity, fetch)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{"A", "B", "C"}, result.Items)
	require.Empty(t, result.NextCursor)
	require.Equal(t, 2, fetches)
}

func TestPaginateDedupAcrossPages(t *testing.T) {
	fetch := func(ctx context.Context, cursor string, count int) (Page[string], error) {
		switch cursor {
		case "":
			return Page[string]{Items: []string{"A", "B", "A"}, NextCursor: "c1"}, nil
		case "c1":
			return Page[string]{Items: []string{"B", "C", "A"}, NextCursor: "c2"}, nil
		default:
			return Page[string]{Items: []string{"C"}, NextCursor: "c3"}, nil
		}
	}

	result, err := Paginate(context.Background(), PaginateOptions{TargetCount: 10}, stringIdentity, fetch)
	if err != nil {
		t.Fatal(err)
	}
	// each identity exactly once, in first-seen order; the all-duplicate
	// third page terminates the walk
	require.Equal(t, []string{"A", "B", "C"}, result.Items)
	require.Empty(t, result.NextCursor)
}

func TestPaginateTermination(t *testing.T) {
	for _, tc := range []struct {
		name        string
		startCursor string
		page        Page[string]
	}{
		{"no cursor", "", Page[string]{Items: []string{"A"}}},
		{"stuck cursor", "s1", Page[string]{Items: []string{"A"}, NextCursor: "s1"}},
		{"empty page", "", Page[string]{NextCursor: "c1"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fetches := 0
			fetch := func(ctx context.Context, cursor string, count int) (Page[string], error) {
				fetches++
				return tc.page, nil
			}
			result, err := Paginate(
				context.Background(),
				PaginateOptions{TargetCount: 100, StartCursor: tc.startCursor},
				stringIdentity,
				fetch,
			)
			if err != nil {
				t.Fatal(err)
			}
			require.Equal(t, 1, fetches)
			require.Empty(t, result.NextCursor)
		})
	}
}

func TestPaginateRepeatedCursorStops(t *testing.T) {
	fetches := 0
	fetch := func(ctx context.Context, cursor string, count int) (Page[string], error) {
		fetches++
		return Page[string]{
			Items:      []string{fmt.Sprintf("item-%d", fetches)},
			NextCursor: "same",
		}, nil
	}

	result, err := Paginate(context.Background(), PaginateOptions{TargetCount: 100, MaxPages: 5}, stringIdentity, fetch)
	if err != nil {
		t.Fatal(err)
	}
	// first page advances to "same", second page returns "same" again
	require.Equal(t, 2, fetches)
	require.Empty(t, result.NextCursor)
}

func TestPaginateHardCap(t *testing.T) {
	fetches := 0
	fetch := func(ctx context.Context, cursor string, count int) (Page[string], error) {
		fetches++
		items := make([]string, count)
		for i := range items {
			items[i] = fmt.Sprintf("page%d-item%d", fetches, i)
		}
		return Page[string]{Items: items, NextCursor: fmt.Sprintf("c%d", fetches)}, nil
	}

	result, err := Paginate(
		context.Background(),
		PaginateOptions{TargetCount: 1_000_000, MaxPages: 1_000_000},
		stringIdentity,
		fetch,
	)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 10, fetches)
	require.NotEmpty(t, result.NextCursor)
	require.Len(t, result.Items, 10*DefaultPageSize)
}

func TestPaginatePartialFailure(t *testing.T) {
	fetch := func(ctx context.Context, cursor string, count int) (Page[string], error) {
		if cursor == "" {
			return Page[string]{Items: []string{"A", "B"}, NextCursor: "c1"}, nil
		}
		return Page[string]{}, fmt.Errorf("upstream went away")
	}

	result, err := Paginate(context.Background(), PaginateOptions{TargetCount: 10}, stringIdentity, fetch)
	require.Error(t, err)
	// items from completed pages survive the failure
	require.Equal(t, []string{"A", "B"}, result.Items)
}

func TestPaginatePageSizeClamped(t *testing.T) {
	var requested []int
	fetch := func(ctx context.Context, cursor string, count int) (Page[string], error) {
		requested = append(requested, count)
		items := make([]string, count)
		for i := range items {
			items[i] = fmt.Sprintf("%s-%d", cursor, i)
		}
		return Page[string]{Items: items, NextCursor: cursor + "x"}, nil
	}

	result, err := Paginate(
		context.Background(),
		PaginateOptions{TargetCount: 30, PageSize: 20, MaxPages: 5},
		stringIdentity,
		fetch,
	)
	if err != nil {
		t.Fatal(err)
	}
	// the second page only asks for what's still missing
	require.Equal(t, []int{20, 10}, requested)
	require.Len(t, result.Items, 30)
}
