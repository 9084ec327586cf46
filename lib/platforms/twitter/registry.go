package twitter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// RefreshSource re-derives query ids from an external source, typically the
// platform's own web bundle. The returned mapping may be partial.
type RefreshSource interface {
	FetchQueryIDs(ctx context.Context, names []string) (map[string]string, error)
}

// minRefreshInterval suppresses back-to-back non-forced refreshes.
const minRefreshInterval = 15 * time.Minute

// OperationRegistry holds, per operation, the ordered candidate query ids:
// the refreshed overlay value first when one exists, the baked-in default
// always last. Resolve never fails.
//
// The overlay is shared mutable state, guarded so a refresh from one call
// cannot clobber an in-flight read from another.
type OperationRegistry struct {
	source RefreshSource
	cache  *QueryIDCache

	mu          sync.Mutex
	overlay     map[string]string
	lastRefresh time.Time
}

// NewOperationRegistry seeds the overlay from the persisted cache when one
// is attached. Cache read failures are logged and ignored, the baked-in
// defaults always remain available.
func NewOperationRegistry(source RefreshSource, cache *QueryIDCache) *OperationRegistry {
	r := &OperationRegistry{
		source:  source,
		cache:   cache,
		overlay: map[string]string{},
	}
	if cache != nil {
		ids, err := cache.Load(context.Background())
		if err != nil {
			slog.Warn("failed to load query id cache", "err", err)
		} else {
			r.overlay = ids
		}
	}
	return r
}

// Resolve returns the ordered candidate query ids for an operation. The
// baked-in default is always the last candidate, so the result is never
// empty for a known operation. An operation with neither a default nor an
// overlay entry resolves to nothing.
func (r *OperationRegistry) Resolve(name string) []string {
	r.mu.Lock()
	overlay := r.overlay[name]
	r.mu.Unlock()

	def := defaultQueryIDs[name]
	if def == "" {
		if overlay != "" {
			return []string{overlay}
		}
		return nil
	}
	if overlay != "" && overlay != def {
		return []string{overlay, def}
	}
	return []string{def}
}

// Refresh re-derives query ids for the named operations and replaces the
// overlay entries for whichever names the source resolved. All failures are
// swallowed: callers fall back to whatever is cached.
func (r *OperationRegistry) Refresh(ctx context.Context, names []string, force bool) {
	ctx, span := tracer.Start(ctx, "registry:Refresh")
	defer span.End()
	span.SetAttributes(attribute.Bool("custom.force", force))

	r.mu.Lock()
	if !force && time.Since(r.lastRefresh) < minRefreshInterval {
		r.mu.Unlock()
		return
	}
	r.lastRefresh = time.Now()
	r.mu.Unlock()

	if r.source == nil {
		return
	}

	ids, err := r.source.FetchQueryIDs(ctx, names)
	if err != nil {
		slog.WarnContext(ctx, "query id refresh failed", "err", err)
		return
	}
	if len(ids) == 0 {
		slog.WarnContext(ctx, "query id refresh resolved nothing")
		return
	}

	r.mu.Lock()
	for name, id := range ids {
		r.overlay[name] = id
	}
	snapshot := make(map[string]string, len(r.overlay))
	for name, id := range r.overlay {
		snapshot[name] = id
	}
	r.mu.Unlock()

	slog.InfoContext(ctx, "refreshed query ids", "resolved", len(ids))

	if r.cache != nil {
		if err := r.cache.Save(ctx, snapshot); err != nil {
			slog.WarnContext(ctx, "failed to persist query id cache", "err", err)
		}
	}
}
