package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
)

// amountsDTO carries the server-computed figures. The API sends them as
// optional decimal numbers of euros; absent means not computed yet.
type amountsDTO struct {
	ExclTax      *float64 `json:"excl_tax"`
	Tax          *float64 `json:"tax"`
	InclTax      *float64 `json:"incl_tax"`
	Obsolescence *float64 `json:"obsolescence"`
	Discount     *float64 `json:"discount"`
	Recovery     *float64 `json:"recovery"`
}

func (d amountsDTO) toEntity() entities.ComputedAmounts {
	return entities.ComputedAmounts{
		ExclTax:      entities.AmountFromFloatPtr(d.ExclTax),
		Tax:          entities.AmountFromFloatPtr(d.Tax),
		InclTax:      entities.AmountFromFloatPtr(d.InclTax),
		Obsolescence: entities.AmountFromFloatPtr(d.Obsolescence),
		Discount:     entities.AmountFromFloatPtr(d.Discount),
		Recovery:     entities.AmountFromFloatPtr(d.Recovery),
	}
}

// ownerDTO rides along on every create and update payload.
type ownerDTO struct {
	AssignmentID int64 `json:"assignment_id"`
	ShockID      int64 `json:"shock_id"`
	PaintTypeID  int64 `json:"paint_type_id"`
	HourlyRateID int64 `json:"hourly_rate_id"`
	TaxIncluded  bool  `json:"tax_included"`
}

func ownerToDTO(o entities.OwnerContext) ownerDTO {
	return ownerDTO{
		AssignmentID: o.AssignmentID,
		ShockID:      o.ShockID,
		PaintTypeID:  o.PaintTypeID,
		HourlyRateID: o.HourlyRateID,
		TaxIncluded:  o.TaxIncluded,
	}
}

type reorderPayload struct {
	OrderedIDs []int64 `json:"ordered_ids"`
}

type supplyLineDTO struct {
	ID              int64           `json:"id"`
	SupplyID        int64           `json:"supply_id"`
	Designation     string          `json:"designation"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       *float64        `json:"unit_price"`
	DiscountPct     decimal.Decimal `json:"discount_pct"`
	ObsolescencePct decimal.Decimal `json:"obsolescence_pct"`
	Paint           bool            `json:"paint"`
	Dismantle       bool            `json:"dismantle"`
	Replace         bool            `json:"replace"`
	Recovered       bool            `json:"recovered"`
	Amounts         amountsDTO      `json:"amounts"`
}

type supplyPayload struct {
	ownerDTO
	SupplyID        int64           `json:"supply_id"`
	Designation     string          `json:"designation"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       float64         `json:"unit_price"`
	DiscountPct     decimal.Decimal `json:"discount_pct"`
	ObsolescencePct decimal.Decimal `json:"obsolescence_pct"`
	Paint           bool            `json:"paint"`
	Dismantle       bool            `json:"dismantle"`
	Replace         bool            `json:"replace"`
	Recovered       bool            `json:"recovered"`
}

func supplyToPayload(owner entities.OwnerContext, f entities.SupplyFields) supplyPayload {
	return supplyPayload{
		ownerDTO:        ownerToDTO(owner),
		SupplyID:        f.SupplyID,
		Designation:     f.Designation,
		Quantity:        f.Quantity,
		UnitPrice:       f.UnitPrice.Decimal().InexactFloat64(),
		DiscountPct:     f.DiscountPct,
		ObsolescencePct: f.ObsolescencePct,
		Paint:           f.Paint,
		Dismantle:       f.Dismantle,
		Replace:         f.Replace,
		Recovered:       f.Recovered,
	}
}

func (d supplyLineDTO) toEntity() entities.Line[entities.SupplyFields] {
	return entities.Line[entities.SupplyFields]{
		ID: entities.LineID{ServerID: d.ID},
		Fields: entities.SupplyFields{
			SupplyID:        d.SupplyID,
			Designation:     d.Designation,
			Quantity:        d.Quantity,
			UnitPrice:       entities.AmountFromFloatPtr(d.UnitPrice),
			DiscountPct:     d.DiscountPct,
			ObsolescencePct: d.ObsolescencePct,
			Paint:           d.Paint,
			Dismantle:       d.Dismantle,
			Replace:         d.Replace,
			Recovered:       d.Recovered,
		},
		Amounts: d.Amounts.toEntity(),
	}
}

// SupplyRepository persists supply rows over the REST API.
type SupplyRepository struct {
	client *Client
}

// Verify interface compliance
var _ repositories.LineItemRepository[entities.SupplyFields] = (*SupplyRepository)(nil)

// NewSupplyRepository creates a supply repository over the client.
func NewSupplyRepository(client *Client) *SupplyRepository {
	return &SupplyRepository{client: client}
}

func (r *SupplyRepository) Create(
	ctx context.Context,
	owner entities.OwnerContext,
	fields entities.SupplyFields,
) (entities.Line[entities.SupplyFields], error) {
	var dto supplyLineDTO
	path := fmt.Sprintf("/shocks/%d/supplies", owner.ShockID)
	if err := r.client.doJSON(ctx, http.MethodPost, path, supplyToPayload(owner, fields), &dto); err != nil {
		return entities.Line[entities.SupplyFields]{}, err
	}
	return dto.toEntity(), nil
}

func (r *SupplyRepository) Update(
	ctx context.Context,
	id int64,
	owner entities.OwnerContext,
	fields entities.SupplyFields,
) (entities.Line[entities.SupplyFields], error) {
	var dto supplyLineDTO
	path := fmt.Sprintf("/shocks/%d/supplies/%d", owner.ShockID, id)
	if err := r.client.doJSON(ctx, http.MethodPut, path, supplyToPayload(owner, fields), &dto); err != nil {
		return entities.Line[entities.SupplyFields]{}, err
	}
	return dto.toEntity(), nil
}

func (r *SupplyRepository) Delete(ctx context.Context, id int64) error {
	return r.client.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/supplies/%d", id), nil, nil)
}

func (r *SupplyRepository) Reorder(ctx context.Context, shockID int64, orderedIDs []int64) error {
	path := fmt.Sprintf("/shocks/%d/supplies/order", shockID)
	return r.client.doJSON(ctx, http.MethodPut, path, reorderPayload{OrderedIDs: orderedIDs}, nil)
}

func (r *SupplyRepository) List(ctx context.Context, shockID int64) ([]entities.Line[entities.SupplyFields], error) {
	var dtos []supplyLineDTO
	path := fmt.Sprintf("/shocks/%d/supplies", shockID)
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entities.Line[entities.SupplyFields], len(dtos))
	for i, dto := range dtos {
		out[i] = dto.toEntity()
	}
	return out, nil
}

type laborLineDTO struct {
	ID           int64           `json:"id"`
	WorkTypeID   int64           `json:"work_type_id"`
	HourlyRateID int64           `json:"hourly_rate_id"`
	Hours        decimal.Decimal `json:"hours"`
	DiscountPct  decimal.Decimal `json:"discount_pct"`
	Tier1        bool            `json:"tier1"`
	Tier2        bool            `json:"tier2"`
	Tier3        bool            `json:"tier3"`
	Amounts      amountsDTO      `json:"amounts"`
}

type laborPayload struct {
	ownerDTO
	WorkTypeID   int64           `json:"work_type_id"`
	HourlyRateID int64           `json:"hourly_rate_id"`
	Hours        decimal.Decimal `json:"hours"`
	DiscountPct  decimal.Decimal `json:"discount_pct"`
	Tier1        bool            `json:"tier1"`
	Tier2        bool            `json:"tier2"`
	Tier3        bool            `json:"tier3"`
}

func laborToPayload(owner entities.OwnerContext, f entities.LaborFields) laborPayload {
	return laborPayload{
		ownerDTO:     ownerToDTO(owner),
		WorkTypeID:   f.WorkTypeID,
		HourlyRateID: f.HourlyRateID,
		Hours:        f.Hours,
		DiscountPct:  f.DiscountPct,
		Tier1:        f.Tier1,
		Tier2:        f.Tier2,
		Tier3:        f.Tier3,
	}
}

func (d laborLineDTO) toEntity() entities.Line[entities.LaborFields] {
	return entities.Line[entities.LaborFields]{
		ID: entities.LineID{ServerID: d.ID},
		Fields: entities.LaborFields{
			WorkTypeID:   d.WorkTypeID,
			HourlyRateID: d.HourlyRateID,
			Hours:        d.Hours,
			DiscountPct:  d.DiscountPct,
			Tier1:        d.Tier1,
			Tier2:        d.Tier2,
			Tier3:        d.Tier3,
		},
		Amounts: d.Amounts.toEntity(),
	}
}

// LaborRepository persists workforce rows over the REST API.
type LaborRepository struct {
	client *Client
}

// Verify interface compliance
var _ repositories.LineItemRepository[entities.LaborFields] = (*LaborRepository)(nil)

// NewLaborRepository creates a labor repository over the client.
func NewLaborRepository(client *Client) *LaborRepository {
	return &LaborRepository{client: client}
}

func (r *LaborRepository) Create(
	ctx context.Context,
	owner entities.OwnerContext,
	fields entities.LaborFields,
) (entities.Line[entities.LaborFields], error) {
	var dto laborLineDTO
	path := fmt.Sprintf("/shocks/%d/labor", owner.ShockID)
	if err := r.client.doJSON(ctx, http.MethodPost, path, laborToPayload(owner, fields), &dto); err != nil {
		return entities.Line[entities.LaborFields]{}, err
	}
	return dto.toEntity(), nil
}

func (r *LaborRepository) Update(
	ctx context.Context,
	id int64,
	owner entities.OwnerContext,
	fields entities.LaborFields,
) (entities.Line[entities.LaborFields], error) {
	var dto laborLineDTO
	path := fmt.Sprintf("/shocks/%d/labor/%d", owner.ShockID, id)
	if err := r.client.doJSON(ctx, http.MethodPut, path, laborToPayload(owner, fields), &dto); err != nil {
		return entities.Line[entities.LaborFields]{}, err
	}
	return dto.toEntity(), nil
}

func (r *LaborRepository) Delete(ctx context.Context, id int64) error {
	return r.client.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/labor/%d", id), nil, nil)
}

func (r *LaborRepository) Reorder(ctx context.Context, shockID int64, orderedIDs []int64) error {
	path := fmt.Sprintf("/shocks/%d/labor/order", shockID)
	return r.client.doJSON(ctx, http.MethodPut, path, reorderPayload{OrderedIDs: orderedIDs}, nil)
}

func (r *LaborRepository) List(ctx context.Context, shockID int64) ([]entities.Line[entities.LaborFields], error) {
	var dtos []laborLineDTO
	path := fmt.Sprintf("/shocks/%d/labor", shockID)
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entities.Line[entities.LaborFields], len(dtos))
	for i, dto := range dtos {
		out[i] = dto.toEntity()
	}
	return out, nil
}
