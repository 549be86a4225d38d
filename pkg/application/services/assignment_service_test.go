package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/infrastructure/events"
	"github.com/mbarret/expertdesk/pkg/infrastructure/repositories/memory"
)

type testBackend struct {
	supplies    *memory.LineItemRepository[entities.SupplyFields]
	labor       *memory.LineItemRepository[entities.LaborFields]
	assignments *memory.AssignmentRepository
	catalogs    *memory.CatalogRepository

	frontBumper entities.CatalogEntry
	bodywork    entities.CatalogEntry
	standard    entities.CatalogEntry
	solid       entities.CatalogEntry
}

// buildTestBackend seeds one assignment with two shocks: the front shock has
// two supply rows and one labor row, the rear shock is empty.
func buildTestBackend() *testBackend {
	b := &testBackend{
		supplies: memory.NewSupplyRepository(),
		catalogs: memory.NewCatalogRepository(),
	}

	b.frontBumper = b.catalogs.Seed(entities.CatalogSupplies, "Front bumper", "FB", true)
	b.bodywork = b.catalogs.Seed(entities.CatalogWorkTypes, "Bodywork", "BW", true)
	b.solid = b.catalogs.Seed(entities.CatalogPaintTypes, "Solid", "SO", true)
	b.standard = b.catalogs.Seed(entities.CatalogHourlyRates, "Standard", "ST", true)

	b.labor = memory.NewLaborRepository(map[int64]entities.Amount{b.standard.ID: 6000})
	b.assignments = memory.NewAssignmentRepository(b.supplies, b.labor)

	frontOwner := entities.OwnerContext{
		AssignmentID: 1,
		ShockID:      10,
		PaintTypeID:  b.solid.ID,
		HourlyRateID: b.standard.ID,
	}
	b.supplies.Seed(frontOwner,
		entities.SupplyFields{SupplyID: b.frontBumper.ID, Quantity: decimal.NewFromInt(1), UnitPrice: 10000},
		entities.SupplyFields{SupplyID: b.frontBumper.ID, Quantity: decimal.NewFromInt(2), UnitPrice: 5000},
	)
	b.labor.Seed(frontOwner,
		entities.LaborFields{WorkTypeID: b.bodywork.ID, Hours: decimal.NewFromInt(3)},
	)

	b.assignments.Seed(entities.Assignment{
		ID:        1,
		Reference: "EXP-2026-0001",
		Status:    entities.StatusAssigned,
		Shocks: []entities.Shock{
			{ID: 10, Label: "Front", PaintTypeID: b.solid.ID, HourlyRateID: b.standard.ID},
			{ID: 11, Label: "Rear", PaintTypeID: b.solid.ID, HourlyRateID: b.standard.ID},
		},
	})
	return b
}

func newTestService(b *testBackend, store events.EventStore) *AssignmentService {
	return NewAssignmentService(b.assignments, b.supplies, b.labor, b.catalogs, store, nil, 0)
}

func TestAssignmentService_Open(t *testing.T) {
	b := buildTestBackend()
	svc := newTestService(b, nil)

	cs, err := svc.Open(context.Background(), 1)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer cs.Close()

	if got := cs.Assignment().Reference; got != "EXP-2026-0001" {
		t.Errorf("Expected reference EXP-2026-0001, got %q", got)
	}
	editors := cs.Editors()
	if len(editors) != 2 {
		t.Fatalf("Expected 2 shock editors, got %d", len(editors))
	}
	front, ok := cs.Editor(10)
	if !ok {
		t.Fatal("Expected an editor for shock 10")
	}
	if front.Supplies.Len() != 2 || front.Labor.Len() != 1 {
		t.Errorf("Expected 2 supply and 1 labor rows, got %d and %d",
			front.Supplies.Len(), front.Labor.Len())
	}
	rear, _ := cs.Editor(11)
	if rear.Supplies.Len() != 0 {
		t.Errorf("Expected empty rear shock, got %d rows", rear.Supplies.Len())
	}

	// Loaded references resolve to labels.
	if got := cs.Supplies.Label(b.frontBumper.ID); got != "Front bumper" {
		t.Errorf("Expected resolved supply label, got %q", got)
	}
	if got := cs.WorkTypes.Label(b.bodywork.ID); got != "Bodywork" {
		t.Errorf("Expected resolved work-type label, got %q", got)
	}

	if _, err := svc.Open(context.Background(), 999); err == nil {
		t.Error("Expected opening an unknown assignment to fail")
	}
}

func TestCaseSession_SaveMarksStaleAndRefreshClears(t *testing.T) {
	b := buildTestBackend()
	svc := newTestService(b, nil)

	cs, err := svc.Open(context.Background(), 1)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer cs.Close()

	if cs.Stale() {
		t.Fatal("Expected a freshly opened case not to be stale")
	}
	summaryBefore := cs.Assignment().Summary

	front, _ := cs.Editor(10)
	if err := front.Supplies.Edit(0, func(f *entities.SupplyFields) {
		f.Quantity = decimal.NewFromInt(2)
	}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if err := front.Supplies.SaveRow(context.Background(), 0); err != nil {
		t.Fatalf("SaveRow failed: %v", err)
	}

	if !cs.Stale() {
		t.Fatal("Expected case to be stale after a persisted mutation")
	}
	if err := cs.RefreshIfStale(context.Background()); err != nil {
		t.Fatalf("RefreshIfStale failed: %v", err)
	}
	if cs.Stale() {
		t.Error("Expected refresh to clear staleness")
	}
	summaryAfter := cs.Assignment().Summary
	if summaryAfter.ExclTax != summaryBefore.ExclTax+10000 {
		t.Errorf("Expected summary to grow by 10000, got %d -> %d",
			summaryBefore.ExclTax, summaryAfter.ExclTax)
	}

	// Unsaved local edits survive the refresh.
	if err := front.Supplies.Edit(1, func(f *entities.SupplyFields) {
		f.UnitPrice = 9999
	}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if err := cs.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	row, _ := front.Supplies.Line(1)
	if row.Fields.UnitPrice != 9999 {
		t.Error("Expected the unsaved edit to survive a record refresh")
	}
}

func TestCaseSession_ReloadLinesDiscardsEdits(t *testing.T) {
	b := buildTestBackend()
	svc := newTestService(b, nil)

	cs, err := svc.Open(context.Background(), 1)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer cs.Close()

	front, _ := cs.Editor(10)
	if err := front.Supplies.Edit(0, func(f *entities.SupplyFields) {
		f.UnitPrice = 9999
	}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	if err := cs.ReloadLines(context.Background()); err != nil {
		t.Fatalf("ReloadLines failed: %v", err)
	}
	row, _ := front.Supplies.Line(0)
	if row.Fields.UnitPrice == 9999 {
		t.Error("Expected ReloadLines to discard the unsaved edit")
	}
	if len(front.Supplies.DirtyIndices()) != 0 {
		t.Error("Expected no dirty rows after ReloadLines")
	}
}

func TestCaseSession_CreateCatalogEntry(t *testing.T) {
	b := buildTestBackend()
	store := events.NewInMemoryEventStore()
	svc := newTestService(b, store)

	cs, err := svc.Open(context.Background(), 1)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer cs.Close()

	entry, err := cs.CreateCatalogEntry(context.Background(), entities.CatalogSupplies, "Custom spoiler")
	if err != nil {
		t.Fatalf("CreateCatalogEntry failed: %v", err)
	}
	if got := cs.Supplies.Label(entry.ID); got != "Custom spoiler" {
		t.Errorf("Expected the new entry to resolve immediately, got %q", got)
	}

	recorded, err := store.ReadEvents("catalog:supplies", 0)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(recorded) != 1 || recorded[0].Type() != events.CatalogEntryCreatedEvent {
		t.Errorf("Expected one catalog.entry.created event, got %+v", recorded)
	}
}
