package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
)

// Wire values of the workflow stage.
var statusFromWire = map[string]entities.AssignmentStatus{
	"created":       entities.StatusCreated,
	"assigned":      entities.StatusAssigned,
	"ascertained":   entities.StatusAscertained,
	"report_issued": entities.StatusReportIssued,
	"invoiced":      entities.StatusInvoiced,
	"closed":        entities.StatusClosed,
	"cancelled":     entities.StatusCancelled,
}

var roleFromWire = map[string]entities.Role{
	"admin":     entities.RoleAdmin,
	"expert":    entities.RoleExpert,
	"secretary": entities.RoleSecretary,
}

var entityKindFromWire = map[string]entities.EntityKind{
	"insurer":      entities.EntityInsurer,
	"repairer":     entities.EntityRepairer,
	"organization": entities.EntityOrganization,
}

type userDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (d userDTO) toEntity() entities.User {
	return entities.User{ID: d.ID, Name: d.Name, Email: d.Email, Role: roleFromWire[d.Role]}
}

type entityDTO struct {
	ID      int64  `json:"id"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Siret   string `json:"siret"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

func (d entityDTO) toEntity() entities.Entity {
	return entities.Entity{
		ID:      d.ID,
		Kind:    entityKindFromWire[d.Kind],
		Name:    d.Name,
		Siret:   d.Siret,
		Address: d.Address,
		City:    d.City,
		Zip:     d.Zip,
	}
}

type vehicleDTO struct {
	ID                int64     `json:"id"`
	Plate             string    `json:"plate"`
	VIN               string    `json:"vin"`
	Make              string    `json:"make"`
	Model             string    `json:"model"`
	FirstRegistration time.Time `json:"first_registration"`
	MileageKM         int64     `json:"mileage_km"`
}

func (d vehicleDTO) toEntity() entities.Vehicle {
	return entities.Vehicle{
		ID:                d.ID,
		Plate:             d.Plate,
		VIN:               d.VIN,
		Make:              d.Make,
		Model:             d.Model,
		FirstRegistration: d.FirstRegistration,
		MileageKM:         d.MileageKM,
	}
}

type shockDTO struct {
	ID           int64           `json:"id"`
	Label        string          `json:"label"`
	PaintTypeID  int64           `json:"paint_type_id"`
	HourlyRateID int64           `json:"hourly_rate_id"`
	TaxIncluded  bool            `json:"tax_included"`
	Supplies     []supplyLineDTO `json:"supplies"`
	Labor        []laborLineDTO  `json:"labor"`
}

func (d shockDTO) toEntity() entities.Shock {
	shock := entities.Shock{
		ID:           d.ID,
		Label:        d.Label,
		PaintTypeID:  d.PaintTypeID,
		HourlyRateID: d.HourlyRateID,
		TaxIncluded:  d.TaxIncluded,
	}
	for _, line := range d.Supplies {
		shock.Supplies = append(shock.Supplies, line.toEntity())
	}
	for _, line := range d.Labor {
		shock.Labor = append(shock.Labor, line.toEntity())
	}
	return shock
}

type summaryDTO struct {
	ExclTax      *float64 `json:"excl_tax"`
	Tax          *float64 `json:"tax"`
	InclTax      *float64 `json:"incl_tax"`
	Obsolescence *float64 `json:"obsolescence"`
	Discount     *float64 `json:"discount"`
	Recovery     *float64 `json:"recovery"`
}

func (d summaryDTO) toEntity() entities.FinancialSummary {
	return entities.FinancialSummary{
		ExclTax:      entities.AmountFromFloatPtr(d.ExclTax),
		Tax:          entities.AmountFromFloatPtr(d.Tax),
		InclTax:      entities.AmountFromFloatPtr(d.InclTax),
		Obsolescence: entities.AmountFromFloatPtr(d.Obsolescence),
		Discount:     entities.AmountFromFloatPtr(d.Discount),
		Recovery:     entities.AmountFromFloatPtr(d.Recovery),
	}
}

type assignmentDTO struct {
	ID        int64      `json:"id"`
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	Vehicle   vehicleDTO `json:"vehicle"`
	Insurer   entityDTO  `json:"insurer"`
	Repairer  entityDTO  `json:"repairer"`
	Expert    userDTO    `json:"expert"`
	Shocks    []shockDTO `json:"shocks"`
	Summary   summaryDTO `json:"summary"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (d assignmentDTO) toEntity() entities.Assignment {
	assignment := entities.Assignment{
		ID:        d.ID,
		Reference: d.Reference,
		Status:    statusFromWire[d.Status],
		Vehicle:   d.Vehicle.toEntity(),
		Insurer:   d.Insurer.toEntity(),
		Repairer:  d.Repairer.toEntity(),
		Expert:    d.Expert.toEntity(),
		Summary:   d.Summary.toEntity(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	for _, shock := range d.Shocks {
		assignment.Shocks = append(assignment.Shocks, shock.toEntity())
	}
	return assignment
}

// AssignmentRepository reads expertise cases over the REST API.
type AssignmentRepository struct {
	client *Client
}

// Verify interface compliance
var _ repositories.AssignmentRepository = (*AssignmentRepository)(nil)

// NewAssignmentRepository creates an assignment repository over the client.
func NewAssignmentRepository(client *Client) *AssignmentRepository {
	return &AssignmentRepository{client: client}
}

func (r *AssignmentRepository) Get(ctx context.Context, id int64) (entities.Assignment, error) {
	var dto assignmentDTO
	if err := r.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("/assignments/%d", id), nil, &dto); err != nil {
		return entities.Assignment{}, err
	}
	return dto.toEntity(), nil
}

func (r *AssignmentRepository) List(ctx context.Context) ([]entities.Assignment, error) {
	var dtos []assignmentDTO
	if err := r.client.doJSON(ctx, http.MethodGet, "/assignments", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entities.Assignment, len(dtos))
	for i, dto := range dtos {
		out[i] = dto.toEntity()
	}
	return out, nil
}
