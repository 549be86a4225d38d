package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

func testOwner() entities.OwnerContext {
	return entities.OwnerContext{AssignmentID: 1, ShockID: 10, HourlyRateID: 2}
}

func TestSupplyRepository_CreateComputesAmounts(t *testing.T) {
	repo := NewSupplyRepository()

	line, err := repo.Create(context.Background(), testOwner(), entities.SupplyFields{
		SupplyID:        100,
		Quantity:        decimal.NewFromInt(2),
		UnitPrice:       10000, // 100.00 each
		DiscountPct:     decimal.NewFromInt(10),
		ObsolescencePct: decimal.NewFromInt(5),
		Recovered:       true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !line.ID.Persisted() {
		t.Error("Expected created line to carry a server id")
	}
	// gross 200.00, discount 20.00, obsolescence 10.00, excl 170.00
	if line.Amounts.ExclTax != 17000 {
		t.Errorf("Expected excl-tax 17000, got %d", line.Amounts.ExclTax)
	}
	if line.Amounts.Tax != 3400 {
		t.Errorf("Expected tax 3400, got %d", line.Amounts.Tax)
	}
	if line.Amounts.InclTax != 20400 {
		t.Errorf("Expected incl-tax 20400, got %d", line.Amounts.InclTax)
	}
	if line.Amounts.Discount != 2000 || line.Amounts.Obsolescence != 1000 {
		t.Errorf("Expected discount 2000 and obsolescence 1000, got %d and %d",
			line.Amounts.Discount, line.Amounts.Obsolescence)
	}
	if line.Amounts.Recovery != 1000 {
		t.Errorf("Expected recovered obsolescence 1000, got %d", line.Amounts.Recovery)
	}
}

func TestSupplyRepository_CreateRejectsMissingReference(t *testing.T) {
	repo := NewSupplyRepository()
	_, err := repo.Create(context.Background(), testOwner(), entities.SupplyFields{
		Quantity: decimal.NewFromInt(1),
	})
	if err == nil {
		t.Fatal("Expected create without a catalog reference to fail")
	}
}

func TestSupplyRepository_UpdateRecomputes(t *testing.T) {
	repo := NewSupplyRepository()
	seeded := repo.Seed(testOwner(), entities.SupplyFields{
		SupplyID:  100,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 10000,
	})

	updated, err := repo.Update(context.Background(), seeded[0].ID.ServerID, testOwner(), entities.SupplyFields{
		SupplyID:  100,
		Quantity:  decimal.NewFromInt(3),
		UnitPrice: 10000,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Amounts.ExclTax != 30000 {
		t.Errorf("Expected recomputed excl-tax 30000, got %d", updated.Amounts.ExclTax)
	}

	if _, err := repo.Update(context.Background(), 9999, testOwner(), entities.SupplyFields{SupplyID: 100}); err == nil {
		t.Error("Expected update of an unknown id to fail")
	}
}

func TestSupplyRepository_Delete(t *testing.T) {
	repo := NewSupplyRepository()
	seeded := repo.Seed(testOwner(),
		entities.SupplyFields{SupplyID: 100, Quantity: decimal.NewFromInt(1), UnitPrice: 1000},
		entities.SupplyFields{SupplyID: 101, Quantity: decimal.NewFromInt(1), UnitPrice: 2000},
	)

	if err := repo.Delete(context.Background(), seeded[0].ID.ServerID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	rows, err := repo.List(context.Background(), testOwner().ShockID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID.ServerID != seeded[1].ID.ServerID {
		t.Errorf("Expected only the second row to survive, got %+v", rows)
	}

	if err := repo.Delete(context.Background(), seeded[0].ID.ServerID); err == nil {
		t.Error("Expected deleting an already deleted row to fail")
	}
}

func TestSupplyRepository_Reorder(t *testing.T) {
	repo := NewSupplyRepository()
	seeded := repo.Seed(testOwner(),
		entities.SupplyFields{SupplyID: 100, Quantity: decimal.NewFromInt(1), UnitPrice: 1000},
		entities.SupplyFields{SupplyID: 101, Quantity: decimal.NewFromInt(1), UnitPrice: 2000},
		entities.SupplyFields{SupplyID: 102, Quantity: decimal.NewFromInt(1), UnitPrice: 3000},
	)
	ids := []int64{seeded[2].ID.ServerID, seeded[0].ID.ServerID, seeded[1].ID.ServerID}

	if err := repo.Reorder(context.Background(), testOwner().ShockID, ids); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	rows, _ := repo.List(context.Background(), testOwner().ShockID)
	for i, want := range ids {
		if rows[i].ID.ServerID != want {
			t.Errorf("Expected row %d to be id %d, got %d", i, want, rows[i].ID.ServerID)
		}
	}

	if err := repo.Reorder(context.Background(), testOwner().ShockID, []int64{9999}); err == nil {
		t.Error("Expected reorder with a foreign id to fail")
	}
	if err := repo.Reorder(context.Background(), testOwner().ShockID, []int64{ids[0], ids[0]}); err == nil {
		t.Error("Expected reorder with a duplicate id to fail")
	}
}

func TestSupplyRepository_ReorderKeepsUnlistedRows(t *testing.T) {
	repo := NewSupplyRepository()
	seeded := repo.Seed(testOwner(),
		entities.SupplyFields{SupplyID: 100, Quantity: decimal.NewFromInt(1), UnitPrice: 1000},
		entities.SupplyFields{SupplyID: 101, Quantity: decimal.NewFromInt(1), UnitPrice: 2000},
		entities.SupplyFields{SupplyID: 102, Quantity: decimal.NewFromInt(1), UnitPrice: 3000},
	)

	// Partial order: unlisted rows follow the ordered ones.
	if err := repo.Reorder(context.Background(), testOwner().ShockID,
		[]int64{seeded[1].ID.ServerID}); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	rows, _ := repo.List(context.Background(), testOwner().ShockID)
	want := []int64{seeded[1].ID.ServerID, seeded[0].ID.ServerID, seeded[2].ID.ServerID}
	for i := range want {
		if rows[i].ID.ServerID != want[i] {
			t.Errorf("Expected row %d to be id %d, got %d", i, want[i], rows[i].ID.ServerID)
		}
	}
}

func TestLaborRepository_RateFallsBackToOwner(t *testing.T) {
	rates := map[int64]entities.Amount{
		2: 6000, // 60.00/h
		3: 8000,
	}
	repo := NewLaborRepository(rates)

	// Explicit rate on the row wins.
	line, err := repo.Create(context.Background(), testOwner(), entities.LaborFields{
		WorkTypeID:   50,
		HourlyRateID: 3,
		Hours:        decimal.NewFromInt(2),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if line.Amounts.ExclTax != 16000 {
		t.Errorf("Expected excl-tax 16000 at the row rate, got %d", line.Amounts.ExclTax)
	}

	// Without a row rate the shock's rate applies.
	line, err = repo.Create(context.Background(), testOwner(), entities.LaborFields{
		WorkTypeID: 50,
		Hours:      decimal.NewFromInt(2),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if line.Amounts.ExclTax != 12000 {
		t.Errorf("Expected excl-tax 12000 at the shock rate, got %d", line.Amounts.ExclTax)
	}
}
