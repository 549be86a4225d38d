package editor

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

// fakeSupplyRepo is a scripted line-item backend for session tests. It
// assigns ids, derives amounts the way the real server would (so tests can
// observe the adopt-on-save behavior) and can be told to fail or stall.
type fakeSupplyRepo struct {
	mu     sync.Mutex
	nextID int64

	createCalls  int
	updateCalls  int
	deleteCalls  int
	reorderCalls int

	failNext error         // consumed by the next call
	delay    time.Duration // applied to every call

	lastOwner   entities.OwnerContext
	lastReorder []int64
}

func newFakeSupplyRepo() *fakeSupplyRepo {
	return &fakeSupplyRepo{nextID: 100}
}

func (r *fakeSupplyRepo) takeFailure() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *fakeSupplyRepo) stall() {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
}

// computeAmounts mimics the server: excl = qty * unit price, 20% tax.
func computeAmounts(fields entities.SupplyFields) entities.ComputedAmounts {
	excl := entities.AmountFromDecimal(fields.Quantity.Mul(fields.UnitPrice.Decimal()))
	tax := entities.AmountFromDecimal(excl.Decimal().Mul(decimal.RequireFromString("0.2")))
	return entities.ComputedAmounts{
		ExclTax: excl,
		Tax:     tax,
		InclTax: excl + tax,
	}
}

func (r *fakeSupplyRepo) Create(
	_ context.Context,
	owner entities.OwnerContext,
	fields entities.SupplyFields,
) (entities.Line[entities.SupplyFields], error) {
	r.stall()
	r.mu.Lock()
	r.createCalls++
	r.lastOwner = owner
	r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return entities.Line[entities.SupplyFields]{}, err
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.mu.Unlock()
	return entities.Line[entities.SupplyFields]{
		ID:      entities.LineID{ServerID: id},
		Fields:  fields,
		Amounts: computeAmounts(fields),
	}, nil
}

func (r *fakeSupplyRepo) Update(
	_ context.Context,
	id int64,
	owner entities.OwnerContext,
	fields entities.SupplyFields,
) (entities.Line[entities.SupplyFields], error) {
	r.stall()
	r.mu.Lock()
	r.updateCalls++
	r.lastOwner = owner
	r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return entities.Line[entities.SupplyFields]{}, err
	}
	return entities.Line[entities.SupplyFields]{
		ID:      entities.LineID{ServerID: id},
		Fields:  fields,
		Amounts: computeAmounts(fields),
	}, nil
}

func (r *fakeSupplyRepo) Delete(_ context.Context, _ int64) error {
	r.stall()
	r.mu.Lock()
	r.deleteCalls++
	r.mu.Unlock()
	return r.takeFailure()
}

func (r *fakeSupplyRepo) Reorder(_ context.Context, _ int64, orderedIDs []int64) error {
	r.stall()
	r.mu.Lock()
	r.reorderCalls++
	r.lastReorder = append([]int64(nil), orderedIDs...)
	r.mu.Unlock()
	return r.takeFailure()
}

func (r *fakeSupplyRepo) List(
	_ context.Context,
	_ int64,
) ([]entities.Line[entities.SupplyFields], error) {
	return nil, nil
}

func testOwner() entities.OwnerContext {
	return entities.OwnerContext{
		AssignmentID: 1,
		ShockID:      10,
		PaintTypeID:  3,
		HourlyRateID: 4,
	}
}

// supplyLine builds a persisted row for buffer fixtures.
func supplyLine(serverID int64, supplyID int64, exclTax entities.Amount) entities.Line[entities.SupplyFields] {
	return entities.Line[entities.SupplyFields]{
		ID: entities.LineID{ServerID: serverID},
		Fields: entities.SupplyFields{
			SupplyID:  supplyID,
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: exclTax,
		},
		Amounts: entities.ComputedAmounts{
			ExclTax: exclTax,
			Tax:     exclTax / 5,
			InclTax: exclTax + exclTax/5,
		},
	}
}

func newTestSession(repo *fakeSupplyRepo, cfg SessionConfig) *Session[entities.SupplyFields] {
	return NewSessionWithConfig(KindSupply, testOwner(), repo, cfg)
}
