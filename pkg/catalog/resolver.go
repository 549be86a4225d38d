// Package catalog resolves the reference ids line items carry into display
// labels, fetching entries the loaded pages are missing.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
	"github.com/mbarret/expertdesk/pkg/infrastructure/logging"
)

// Resolver resolves ids of one catalog kind into entries. It starts from a
// base list (the page loaded with the case) and fills gaps on demand: a line
// item can reference an entry that is inactive, paginated out, or created by
// another user since the page was loaded.
type Resolver struct {
	kind entities.CatalogKind
	repo repositories.CatalogRepository
	log  *logging.Logger

	mu        sync.Mutex
	base      []entities.CatalogEntry
	extra     map[int64]entities.CatalogEntry
	requested map[int64]struct{}
}

// NewResolver builds a resolver over a base list. The base slice is treated
// as read-only and is never mutated.
func NewResolver(
	kind entities.CatalogKind,
	base []entities.CatalogEntry,
	repo repositories.CatalogRepository,
	log *logging.Logger,
) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{
		kind:      kind,
		repo:      repo,
		log:       log,
		base:      base,
		extra:     make(map[int64]entities.CatalogEntry),
		requested: make(map[int64]struct{}),
	}
}

// Known reports whether the id resolves without a fetch.
func (r *Resolver) Known(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.lookupLocked(id)
	return ok
}

// Label returns the display label for an id. Unknown ids get a generated
// placeholder so the table always renders something.
func (r *Resolver) Label(id int64) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.lookupLocked(id); ok {
		return entry.Label
	}
	return fmt.Sprintf("Item #%d", id)
}

// Entry returns the resolved entry for an id.
func (r *Resolver) Entry(id int64) (entities.CatalogEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(id)
}

// Resolve makes the ids resolvable, fetching each missing one at most once.
// An id that was already fetched, or whose fetch already failed, is not
// requested again for the lifetime of the resolver. Fetch failures are logged
// and swallowed: a missing label must not block the table.
func (r *Resolver) Resolve(ctx context.Context, ids ...int64) {
	missing := r.takeMissing(ids)
	for _, id := range missing {
		entry, err := r.repo.EntryByID(ctx, r.kind, id)
		if err != nil {
			r.log.Warn("Failed to resolve catalog entry",
				"catalog", r.kind.Slug(),
				"id", id,
				"error", err)
			continue
		}
		r.mu.Lock()
		r.extra[entry.ID] = entry
		r.mu.Unlock()
	}
}

// takeMissing filters the ids down to the ones that still need a fetch and
// marks them requested in the same step, so concurrent Resolve calls never
// fetch the same id twice.
func (r *Resolver) takeMissing(ids []int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var missing []int64
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := r.lookupLocked(id); ok {
			continue
		}
		if _, ok := r.requested[id]; ok {
			continue
		}
		r.requested[id] = struct{}{}
		missing = append(missing, id)
	}
	return missing
}

// Add merges an entry into the resolver, e.g. one created inline from the
// editor.
func (r *Resolver) Add(entry entities.CatalogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extra[entry.ID] = entry
}

// Entries returns the base list plus every entry resolved since, ordered by
// id. The returned slice is a copy.
func (r *Resolver) Entries() []entities.CatalogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := make([]entities.CatalogEntry, 0, len(r.base)+len(r.extra))
	seen := make(map[int64]struct{}, len(r.base))
	for _, entry := range r.base {
		merged = append(merged, entry)
		seen[entry.ID] = struct{}{}
	}
	for _, entry := range r.extra {
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		merged = append(merged, entry)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return merged
}

func (r *Resolver) lookupLocked(id int64) (entities.CatalogEntry, bool) {
	if entry, ok := r.extra[id]; ok {
		return entry, true
	}
	for _, entry := range r.base {
		if entry.ID == id {
			return entry, true
		}
	}
	return entities.CatalogEntry{}, false
}
