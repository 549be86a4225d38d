package repositories

import (
	"context"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

// LineItemRepository persists one editable line-item collection of a shock.
// The server owns validation of amounts and recomputes the read-only figures
// on every call; the returned line carries them back.
type LineItemRepository[F entities.FieldSet] interface {
	// Create persists a row that only exists in the edit buffer and returns
	// the server record, including the assigned id and computed amounts.
	Create(ctx context.Context, owner entities.OwnerContext, fields F) (entities.Line[F], error)

	// Update replaces the editable fields of a persisted row.
	Update(ctx context.Context, id int64, owner entities.OwnerContext, fields F) (entities.Line[F], error)

	// Delete removes a persisted row.
	Delete(ctx context.Context, id int64) error

	// Reorder stores the manual ordering of the shock's persisted rows.
	// orderedIDs must not be empty.
	Reorder(ctx context.Context, shockID int64, orderedIDs []int64) error

	// List returns the shock's rows in their stored order.
	List(ctx context.Context, shockID int64) ([]entities.Line[F], error)
}
