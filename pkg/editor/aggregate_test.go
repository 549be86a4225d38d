package editor

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

func TestSum(t *testing.T) {
	lines := []entities.Line[entities.SupplyFields]{
		supplyLine(1, 100, 1000),
		supplyLine(2, 101, 2000),
	}
	lines[0].Amounts.Discount = 50
	lines[1].Amounts.Recovery = 300

	got := Sum(lines)
	if got.Rows != 2 {
		t.Errorf("Expected 2 rows, got %d", got.Rows)
	}
	if got.ExclTax != 3000 {
		t.Errorf("Expected excl-tax 3000, got %d", got.ExclTax)
	}
	if got.Tax != 600 {
		t.Errorf("Expected tax 600, got %d", got.Tax)
	}
	if got.InclTax != 3600 {
		t.Errorf("Expected incl-tax 3600, got %d", got.InclTax)
	}
	if got.Discount != 50 || got.Recovery != 300 {
		t.Errorf("Expected discount 50 and recovery 300, got %d and %d",
			got.Discount, got.Recovery)
	}
}

func TestSum_Empty(t *testing.T) {
	got := Sum[entities.SupplyFields](nil)
	if got != (Totals{}) {
		t.Errorf("Expected zero totals for an empty buffer, got %+v", got)
	}
}

func TestSum_UncomputedRowContributesZero(t *testing.T) {
	lines := []entities.Line[entities.SupplyFields]{
		supplyLine(1, 100, 1000),
		{ID: entities.NewLocalID(), Fields: entities.SupplyFields{SupplyID: 200}},
	}
	got := Sum(lines)
	if got.Rows != 2 || got.ExclTax != 1000 {
		t.Errorf("Expected excl-tax 1000 over 2 rows, got %+v", got)
	}
}

func TestSession_Totals_TrackBufferMutations(t *testing.T) {
	// Totals must always equal a fresh walk over the buffer, across adds,
	// saves and removals.
	repo := newFakeSupplyRepo()
	s := newTestSession(repo, SessionConfig{})
	s.Initialize([]entities.Line[entities.SupplyFields]{
		supplyLine(1, 100, 1000),
		supplyLine(2, 101, 2000),
	})

	if got := s.Totals(); got.ExclTax != 3000 {
		t.Fatalf("Expected excl-tax 3000, got %d", got.ExclTax)
	}

	// An unsaved row has no server amounts yet, so the figure holds.
	index, err := s.AddRow(entities.SupplyFields{
		SupplyID:  200,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 500,
	})
	if err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}
	if got := s.Totals(); got.ExclTax != 3000 || got.Rows != 3 {
		t.Fatalf("Expected excl-tax 3000 over 3 rows, got %+v", got)
	}

	// Saving adopts the server amounts and the totals move with them.
	if err := s.SaveRow(context.Background(), index); err != nil {
		t.Fatalf("SaveRow failed: %v", err)
	}
	if got := s.Totals(); got.ExclTax != 3500 {
		t.Errorf("Expected excl-tax 3500 after save, got %d", got.ExclTax)
	}

	// Removing a row drops its contribution immediately.
	if err := s.RemoveRow(context.Background(), 0); err != nil {
		t.Fatalf("RemoveRow failed: %v", err)
	}
	if got := s.Totals(); got.ExclTax != 2500 || got.Rows != 2 {
		t.Errorf("Expected excl-tax 2500 over 2 rows, got %+v", got)
	}

	want := Sum(s.Lines())
	if got := s.Totals(); got != want {
		t.Errorf("Expected totals to match a fresh walk, got %+v want %+v", got, want)
	}
}
