package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
)

var invoiceStatusFromWire = map[string]entities.InvoiceStatus{
	"draft":  entities.InvoiceDraft,
	"issued": entities.InvoiceIssued,
	"paid":   entities.InvoicePaid,
	"voided": entities.InvoiceVoided,
}

type invoiceDTO struct {
	ID           int64     `json:"id"`
	AssignmentID int64     `json:"assignment_id"`
	Number       string    `json:"number"`
	Status       string    `json:"status"`
	ExclTax      *float64  `json:"excl_tax"`
	Tax          *float64  `json:"tax"`
	InclTax      *float64  `json:"incl_tax"`
	IssuedAt     time.Time `json:"issued_at"`
}

func (d invoiceDTO) toEntity() entities.Invoice {
	return entities.Invoice{
		ID:           d.ID,
		AssignmentID: d.AssignmentID,
		Number:       d.Number,
		Status:       invoiceStatusFromWire[d.Status],
		ExclTax:      entities.AmountFromFloatPtr(d.ExclTax),
		Tax:          entities.AmountFromFloatPtr(d.Tax),
		InclTax:      entities.AmountFromFloatPtr(d.InclTax),
		IssuedAt:     d.IssuedAt,
	}
}

type ascertainmentDTO struct {
	ID           int64     `json:"id"`
	AssignmentID int64     `json:"assignment_id"`
	Label        string    `json:"label"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

func (d ascertainmentDTO) toEntity() entities.Ascertainment {
	return entities.Ascertainment{
		ID:           d.ID,
		AssignmentID: d.AssignmentID,
		Label:        d.Label,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
	}
}

// DirectoryRepository reads the back-office reference records over the REST
// API.
type DirectoryRepository struct {
	client *Client
}

// Verify interface compliance
var _ repositories.DirectoryRepository = (*DirectoryRepository)(nil)

// NewDirectoryRepository creates a directory repository over the client.
func NewDirectoryRepository(client *Client) *DirectoryRepository {
	return &DirectoryRepository{client: client}
}

func (r *DirectoryRepository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var dtos []userDTO
	if err := r.client.doJSON(ctx, http.MethodGet, "/users", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entities.User, len(dtos))
	for i, dto := range dtos {
		out[i] = dto.toEntity()
	}
	return out, nil
}

func (r *DirectoryRepository) ListEntities(ctx context.Context, kind entities.EntityKind) ([]entities.Entity, error) {
	wire := "organization"
	switch kind {
	case entities.EntityInsurer:
		wire = "insurer"
	case entities.EntityRepairer:
		wire = "repairer"
	}

	var dtos []entityDTO
	if err := r.client.doJSON(ctx, http.MethodGet, "/entities?kind="+wire, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entities.Entity, len(dtos))
	for i, dto := range dtos {
		out[i] = dto.toEntity()
	}
	return out, nil
}

func (r *DirectoryRepository) ListVehicles(ctx context.Context) ([]entities.Vehicle, error) {
	var dtos []vehicleDTO
	if err := r.client.doJSON(ctx, http.MethodGet, "/vehicles", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entities.Vehicle, len(dtos))
	for i, dto := range dtos {
		out[i] = dto.toEntity()
	}
	return out, nil
}

func (r *DirectoryRepository) ListInvoices(ctx context.Context, assignmentID int64) ([]entities.Invoice, error) {
	var dtos []invoiceDTO
	path := fmt.Sprintf("/assignments/%d/invoices", assignmentID)
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entities.Invoice, len(dtos))
	for i, dto := range dtos {
		out[i] = dto.toEntity()
	}
	return out, nil
}

func (r *DirectoryRepository) ListAscertainments(ctx context.Context, assignmentID int64) ([]entities.Ascertainment, error) {
	var dtos []ascertainmentDTO
	path := fmt.Sprintf("/assignments/%d/ascertainments", assignmentID)
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entities.Ascertainment, len(dtos))
	for i, dto := range dtos {
		out[i] = dto.toEntity()
	}
	return out, nil
}
