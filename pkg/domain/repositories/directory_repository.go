package repositories

import (
	"context"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

// DirectoryRepository reads the back-office reference records surrounding an
// assignment: accounts, organizations, vehicles, billing documents and
// condition reports.
type DirectoryRepository interface {
	ListUsers(ctx context.Context) ([]entities.User, error)
	ListEntities(ctx context.Context, kind entities.EntityKind) ([]entities.Entity, error)
	ListVehicles(ctx context.Context) ([]entities.Vehicle, error)
	ListInvoices(ctx context.Context, assignmentID int64) ([]entities.Invoice, error)
	ListAscertainments(ctx context.Context, assignmentID int64) ([]entities.Ascertainment, error)
}
