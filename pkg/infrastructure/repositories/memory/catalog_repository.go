package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
)

// CatalogRepository stores the reference lists in memory.
type CatalogRepository struct {
	mu       sync.Mutex
	nextID   int64
	entries  map[entities.CatalogKind][]entities.CatalogEntry
	failNext error
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates an empty catalog store.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		nextID:  1000,
		entries: make(map[entities.CatalogKind][]entities.CatalogEntry),
	}
}

// Seed adds an entry with an assigned id and returns it.
func (r *CatalogRepository) Seed(kind entities.CatalogKind, label, code string, active bool) entities.CatalogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry := entities.CatalogEntry{ID: r.nextID, Label: label, Code: code, Active: active}
	r.entries[kind] = append(r.entries[kind], entry)
	return entry
}

// FailNext makes the next call return err instead of succeeding.
func (r *CatalogRepository) FailNext(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *CatalogRepository) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

// EntryByID fetches a single entry, active or not.
func (r *CatalogRepository) EntryByID(
	_ context.Context,
	kind entities.CatalogKind,
	id int64,
) (entities.CatalogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return entities.CatalogEntry{}, err
	}
	for _, entry := range r.entries[kind] {
		if entry.ID == id {
			return entry, nil
		}
	}
	return entities.CatalogEntry{}, fmt.Errorf("%s entry not found: %d", kind.Slug(), id)
}

// Page returns a filtered slice of the catalog. Only active entries are
// listed; inactive ones stay reachable through EntryByID.
func (r *CatalogRepository) Page(
	_ context.Context,
	kind entities.CatalogKind,
	filter entities.CatalogFilter,
) ([]entities.CatalogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	query := strings.ToLower(filter.Query)
	var matched []entities.CatalogEntry
	for _, entry := range r.entries[kind] {
		if !entry.Active {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(entry.Label), query) {
			continue
		}
		matched = append(matched, entry)
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	start := filter.Page * pageSize
	if start >= len(matched) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end:end], nil
}

// CreateEntry adds an active entry with the given label.
func (r *CatalogRepository) CreateEntry(
	_ context.Context,
	kind entities.CatalogKind,
	label string,
) (entities.CatalogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return entities.CatalogEntry{}, err
	}
	if strings.TrimSpace(label) == "" {
		return entities.CatalogEntry{}, fmt.Errorf("catalog entry label must not be empty")
	}

	r.nextID++
	entry := entities.CatalogEntry{ID: r.nextID, Label: label, Active: true}
	r.entries[kind] = append(r.entries[kind], entry)
	return entry, nil
}
