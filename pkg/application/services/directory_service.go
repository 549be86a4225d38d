package services

import (
	"context"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
	"github.com/mbarret/expertdesk/pkg/infrastructure/logging"
)

// DirectoryService exposes the back-office reference lists through cached
// stores, one per domain. Per-assignment reads (invoices, ascertainments) are
// fetched on demand since they change with every workflow step.
type DirectoryService struct {
	Users     *ListStore[entities.User]
	Insurers  *ListStore[entities.Entity]
	Repairers *ListStore[entities.Entity]
	Vehicles  *ListStore[entities.Vehicle]

	repo repositories.DirectoryRepository
}

// NewDirectoryService wires the stores over a directory repository.
func NewDirectoryService(
	repo repositories.DirectoryRepository,
	log *logging.Logger,
) *DirectoryService {
	if log == nil {
		log = logging.Nop()
	}
	return &DirectoryService{
		Users: NewListStore("users", repo.ListUsers, log),
		Insurers: NewListStore("insurers", func(ctx context.Context) ([]entities.Entity, error) {
			return repo.ListEntities(ctx, entities.EntityInsurer)
		}, log),
		Repairers: NewListStore("repairers", func(ctx context.Context) ([]entities.Entity, error) {
			return repo.ListEntities(ctx, entities.EntityRepairer)
		}, log),
		Vehicles: NewListStore("vehicles", repo.ListVehicles, log),
		repo:     repo,
	}
}

// Invoices fetches the billing documents of an assignment.
func (s *DirectoryService) Invoices(ctx context.Context, assignmentID int64) ([]entities.Invoice, error) {
	return s.repo.ListInvoices(ctx, assignmentID)
}

// Ascertainments fetches the condition reports of an assignment.
func (s *DirectoryService) Ascertainments(ctx context.Context, assignmentID int64) ([]entities.Ascertainment, error) {
	return s.repo.ListAscertainments(ctx, assignmentID)
}
