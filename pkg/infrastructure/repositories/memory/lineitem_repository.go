// Package memory provides in-memory implementations of the domain
// repositories. Tests and the demo use them as a stand-in for the REST
// backend, including its server-side amount computation.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
)

// vatRate is the flat tax rate the stand-in computation applies.
var vatRate = decimal.RequireFromString("0.2")

// AmountComputer derives the read-only figures of a row the way the server
// would on persist.
type AmountComputer[F entities.FieldSet] func(owner entities.OwnerContext, fields F) entities.ComputedAmounts

// LineItemRepository stores one line-item collection per shock.
type LineItemRepository[F entities.FieldSet] struct {
	mu       sync.Mutex
	nextID   int64
	byShock  map[int64][]entities.Line[F]
	shockOf  map[int64]int64
	compute  AmountComputer[F]
	failNext error
}

// NewLineItemRepository creates an empty repository using the given amount
// computation.
func NewLineItemRepository[F entities.FieldSet](compute AmountComputer[F]) *LineItemRepository[F] {
	return &LineItemRepository[F]{
		byShock: make(map[int64][]entities.Line[F]),
		shockOf: make(map[int64]int64),
		compute: compute,
	}
}

// NewSupplyRepository creates a supply repository with the standard
// computation: quantity times unit price, line discount and obsolescence
// deducted, flat VAT on top, obsolescence recovered when the part is kept.
func NewSupplyRepository() *LineItemRepository[entities.SupplyFields] {
	return NewLineItemRepository(ComputeSupplyAmounts)
}

// NewLaborRepository creates a labor repository priced against the given
// hourly-rate table (rate id to excl-tax amount per hour).
func NewLaborRepository(rates map[int64]entities.Amount) *LineItemRepository[entities.LaborFields] {
	return NewLineItemRepository(laborComputer(rates))
}

// ComputeSupplyAmounts is the stand-in for the server-side supply pricing.
func ComputeSupplyAmounts(_ entities.OwnerContext, fields entities.SupplyFields) entities.ComputedAmounts {
	gross := fields.Quantity.Mul(fields.UnitPrice.Decimal())
	discount := gross.Mul(fields.DiscountPct).Div(decimal.NewFromInt(100))
	obsolescence := gross.Mul(fields.ObsolescencePct).Div(decimal.NewFromInt(100))
	excl := gross.Sub(discount).Sub(obsolescence)
	tax := excl.Mul(vatRate)

	amounts := entities.ComputedAmounts{
		ExclTax:      entities.AmountFromDecimal(excl),
		Tax:          entities.AmountFromDecimal(tax),
		InclTax:      entities.AmountFromDecimal(excl.Add(tax)),
		Obsolescence: entities.AmountFromDecimal(obsolescence),
		Discount:     entities.AmountFromDecimal(discount),
	}
	if fields.Recovered {
		amounts.Recovery = amounts.Obsolescence
	}
	return amounts
}

func laborComputer(rates map[int64]entities.Amount) AmountComputer[entities.LaborFields] {
	return func(owner entities.OwnerContext, fields entities.LaborFields) entities.ComputedAmounts {
		rateID := fields.HourlyRateID
		if rateID == 0 {
			rateID = owner.HourlyRateID
		}
		gross := fields.Hours.Mul(rates[rateID].Decimal())
		discount := gross.Mul(fields.DiscountPct).Div(decimal.NewFromInt(100))
		excl := gross.Sub(discount)
		tax := excl.Mul(vatRate)
		return entities.ComputedAmounts{
			ExclTax:  entities.AmountFromDecimal(excl),
			Tax:      entities.AmountFromDecimal(tax),
			InclTax:  entities.AmountFromDecimal(excl.Add(tax)),
			Discount: entities.AmountFromDecimal(discount),
		}
	}
}

// Verify interface compliance
var _ repositories.LineItemRepository[entities.SupplyFields] = (*LineItemRepository[entities.SupplyFields])(nil)

// Seed loads rows for a shock, assigning server ids.
func (r *LineItemRepository[F]) Seed(owner entities.OwnerContext, fields ...F) []entities.Line[F] {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entities.Line[F], 0, len(fields))
	for _, f := range fields {
		line := r.insertLocked(owner, f)
		out = append(out, line)
	}
	return out
}

// FailNext makes the next call return err instead of succeeding.
func (r *LineItemRepository[F]) FailNext(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *LineItemRepository[F]) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *LineItemRepository[F]) insertLocked(owner entities.OwnerContext, fields F) entities.Line[F] {
	r.nextID++
	line := entities.Line[F]{
		ID:      entities.LineID{ServerID: r.nextID},
		Fields:  fields,
		Amounts: r.compute(owner, fields),
	}
	r.byShock[owner.ShockID] = append(r.byShock[owner.ShockID], line)
	r.shockOf[line.ID.ServerID] = owner.ShockID
	return line
}

// Create persists a new row under the owner's shock.
func (r *LineItemRepository[F]) Create(
	_ context.Context,
	owner entities.OwnerContext,
	fields F,
) (entities.Line[F], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		var zero entities.Line[F]
		return zero, err
	}
	if fields.Reference() == 0 {
		var zero entities.Line[F]
		return zero, fmt.Errorf("line item has no catalog reference")
	}
	return r.insertLocked(owner, fields), nil
}

// Update replaces the fields of a persisted row and recomputes its amounts.
func (r *LineItemRepository[F]) Update(
	_ context.Context,
	id int64,
	owner entities.OwnerContext,
	fields F,
) (entities.Line[F], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero entities.Line[F]
	if err := r.takeFailure(); err != nil {
		return zero, err
	}

	shockID, ok := r.shockOf[id]
	if !ok {
		return zero, fmt.Errorf("line item not found: %d", id)
	}
	rows := r.byShock[shockID]
	for i := range rows {
		if rows[i].ID.ServerID == id {
			rows[i].Fields = fields
			rows[i].Amounts = r.compute(owner, fields)
			return rows[i], nil
		}
	}
	return zero, fmt.Errorf("line item not found: %d", id)
}

// Delete removes a persisted row.
func (r *LineItemRepository[F]) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return err
	}

	shockID, ok := r.shockOf[id]
	if !ok {
		return fmt.Errorf("line item not found: %d", id)
	}
	rows := r.byShock[shockID]
	for i := range rows {
		if rows[i].ID.ServerID == id {
			r.byShock[shockID] = append(rows[:i:i], rows[i+1:]...)
			delete(r.shockOf, id)
			return nil
		}
	}
	return fmt.Errorf("line item not found: %d", id)
}

// Reorder rewrites the display order of a shock's rows. Every id must belong
// to the shock; rows missing from the order keep their relative position
// after the ordered ones.
func (r *LineItemRepository[F]) Reorder(_ context.Context, shockID int64, orderedIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return err
	}

	rows := r.byShock[shockID]
	byID := make(map[int64]entities.Line[F], len(rows))
	for _, row := range rows {
		byID[row.ID.ServerID] = row
	}

	reordered := make([]entities.Line[F], 0, len(rows))
	seen := make(map[int64]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		row, ok := byID[id]
		if !ok {
			return fmt.Errorf("line item %d does not belong to shock %d", id, shockID)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate line item %d in order", id)
		}
		seen[id] = struct{}{}
		reordered = append(reordered, row)
	}
	for _, row := range rows {
		if _, ok := seen[row.ID.ServerID]; !ok {
			reordered = append(reordered, row)
		}
	}
	r.byShock[shockID] = reordered
	return nil
}

// List returns the shock's rows in display order.
func (r *LineItemRepository[F]) List(_ context.Context, shockID int64) ([]entities.Line[F], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	rows := r.byShock[shockID]
	out := make([]entities.Line[F], len(rows))
	copy(out, rows)
	return out, nil
}
