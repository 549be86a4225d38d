package repositories

import (
	"context"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

// CatalogRepository provides access to the reference lists the editor
// resolves labels against.
type CatalogRepository interface {
	// EntryByID fetches a single catalog entry, used when a line item
	// references an id that is not in the currently loaded page.
	EntryByID(ctx context.Context, kind entities.CatalogKind, id int64) (entities.CatalogEntry, error)

	// Page fetches a filtered slice of a catalog.
	Page(ctx context.Context, kind entities.CatalogKind, filter entities.CatalogFilter) ([]entities.CatalogEntry, error)

	// CreateEntry adds a catalog entry created inline from the editor, e.g. a
	// supply the catalog does not know yet.
	CreateEntry(ctx context.Context, kind entities.CatalogKind, label string) (entities.CatalogEntry, error)
}
