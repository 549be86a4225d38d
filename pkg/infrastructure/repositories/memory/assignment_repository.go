package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
)

// AssignmentRepository stores case records and assembles them against the
// line-item repositories on every read, the way the real backend serves a
// case with its current lines and recomputed totals.
type AssignmentRepository struct {
	mu          sync.Mutex
	assignments map[int64]entities.Assignment
	supplies    *LineItemRepository[entities.SupplyFields]
	labor       *LineItemRepository[entities.LaborFields]
	failNext    error
}

// Verify interface compliance
var _ repositories.AssignmentRepository = (*AssignmentRepository)(nil)

// NewAssignmentRepository creates a store assembling cases from the given
// line repositories.
func NewAssignmentRepository(
	supplies *LineItemRepository[entities.SupplyFields],
	labor *LineItemRepository[entities.LaborFields],
) *AssignmentRepository {
	return &AssignmentRepository{
		assignments: make(map[int64]entities.Assignment),
		supplies:    supplies,
		labor:       labor,
	}
}

// Seed stores a case record. Line items are seeded separately on the line
// repositories; this record only carries the shock metadata.
func (r *AssignmentRepository) Seed(assignment entities.Assignment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[assignment.ID] = assignment
}

// FailNext makes the next call return err instead of succeeding.
func (r *AssignmentRepository) FailNext(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

// Get returns the case with its current lines and freshly computed totals.
func (r *AssignmentRepository) Get(ctx context.Context, id int64) (entities.Assignment, error) {
	r.mu.Lock()
	if err := r.failNext; err != nil {
		r.failNext = nil
		r.mu.Unlock()
		return entities.Assignment{}, err
	}
	assignment, ok := r.assignments[id]
	r.mu.Unlock()

	if !ok {
		return entities.Assignment{}, fmt.Errorf("assignment not found: %d", id)
	}
	return r.assemble(ctx, assignment)
}

// List returns all cases ordered by id, assembled like Get.
func (r *AssignmentRepository) List(ctx context.Context) ([]entities.Assignment, error) {
	r.mu.Lock()
	if err := r.failNext; err != nil {
		r.failNext = nil
		r.mu.Unlock()
		return nil, err
	}
	records := make([]entities.Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		records = append(records, a)
	}
	r.mu.Unlock()

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	out := make([]entities.Assignment, 0, len(records))
	for _, record := range records {
		assembled, err := r.assemble(ctx, record)
		if err != nil {
			return nil, err
		}
		out = append(out, assembled)
	}
	return out, nil
}

func (r *AssignmentRepository) assemble(ctx context.Context, assignment entities.Assignment) (entities.Assignment, error) {
	shocks := make([]entities.Shock, len(assignment.Shocks))
	copy(shocks, assignment.Shocks)

	var summary entities.FinancialSummary
	for i := range shocks {
		supplies, err := r.supplies.List(ctx, shocks[i].ID)
		if err != nil {
			return entities.Assignment{}, err
		}
		labor, err := r.labor.List(ctx, shocks[i].ID)
		if err != nil {
			return entities.Assignment{}, err
		}
		shocks[i].Supplies = supplies
		shocks[i].Labor = labor

		for _, line := range supplies {
			addAmounts(&summary, line.Amounts)
		}
		for _, line := range labor {
			addAmounts(&summary, line.Amounts)
		}
	}
	assignment.Shocks = shocks
	assignment.Summary = summary
	return assignment, nil
}

func addAmounts(summary *entities.FinancialSummary, a entities.ComputedAmounts) {
	summary.ExclTax += a.ExclTax
	summary.Tax += a.Tax
	summary.InclTax += a.InclTax
	summary.Obsolescence += a.Obsolescence
	summary.Discount += a.Discount
	summary.Recovery += a.Recovery
}
