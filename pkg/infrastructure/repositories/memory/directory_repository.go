package memory

import (
	"context"
	"sync"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
)

// DirectoryRepository stores the back-office reference records in memory.
type DirectoryRepository struct {
	mu             sync.Mutex
	users          []entities.User
	entities       []entities.Entity
	vehicles       []entities.Vehicle
	invoices       []entities.Invoice
	ascertainments []entities.Ascertainment
}

// Verify interface compliance
var _ repositories.DirectoryRepository = (*DirectoryRepository)(nil)

// NewDirectoryRepository creates an empty directory store.
func NewDirectoryRepository() *DirectoryRepository {
	return &DirectoryRepository{}
}

// SeedUsers adds accounts.
func (r *DirectoryRepository) SeedUsers(users ...entities.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, users...)
}

// SeedEntities adds organizations.
func (r *DirectoryRepository) SeedEntities(list ...entities.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities = append(r.entities, list...)
}

// SeedVehicles adds vehicles.
func (r *DirectoryRepository) SeedVehicles(vehicles ...entities.Vehicle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles = append(r.vehicles, vehicles...)
}

// SeedInvoices adds billing documents.
func (r *DirectoryRepository) SeedInvoices(invoices ...entities.Invoice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices = append(r.invoices, invoices...)
}

// SeedAscertainments adds condition reports.
func (r *DirectoryRepository) SeedAscertainments(list ...entities.Ascertainment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ascertainments = append(r.ascertainments, list...)
}

// ListUsers returns all accounts.
func (r *DirectoryRepository) ListUsers(_ context.Context) ([]entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// ListEntities returns the organizations of one kind.
func (r *DirectoryRepository) ListEntities(_ context.Context, kind entities.EntityKind) ([]entities.Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Entity
	for _, e := range r.entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListVehicles returns all vehicles.
func (r *DirectoryRepository) ListVehicles(_ context.Context) ([]entities.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Vehicle, len(r.vehicles))
	copy(out, r.vehicles)
	return out, nil
}

// ListInvoices returns the billing documents of an assignment.
func (r *DirectoryRepository) ListInvoices(_ context.Context, assignmentID int64) ([]entities.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Invoice
	for _, inv := range r.invoices {
		if inv.AssignmentID == assignmentID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// ListAscertainments returns the condition reports of an assignment.
func (r *DirectoryRepository) ListAscertainments(_ context.Context, assignmentID int64) ([]entities.Ascertainment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Ascertainment
	for _, a := range r.ascertainments {
		if a.AssignmentID == assignmentID {
			out = append(out, a)
		}
	}
	return out, nil
}
