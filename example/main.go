package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mbarret/expertdesk/pkg/application/services"
	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/editor"
	"github.com/mbarret/expertdesk/pkg/infrastructure/events"
	"github.com/mbarret/expertdesk/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// In-memory backend standing in for the REST API.
	supplies := memory.NewSupplyRepository()
	catalogs := memory.NewCatalogRepository()

	bumper := catalogs.Seed(entities.CatalogSupplies, "Front bumper", "FB", true)
	grille := catalogs.Seed(entities.CatalogSupplies, "Radiator grille", "RG", true)
	bodywork := catalogs.Seed(entities.CatalogWorkTypes, "Bodywork", "BW", true)
	paint := catalogs.Seed(entities.CatalogPaintTypes, "Metallic", "ME", true)
	rate := catalogs.Seed(entities.CatalogHourlyRates, "Standard", "ST", true)

	labor := memory.NewLaborRepository(map[int64]entities.Amount{rate.ID: 6500})
	assignments := memory.NewAssignmentRepository(supplies, labor)

	owner := entities.OwnerContext{AssignmentID: 1, ShockID: 10, PaintTypeID: paint.ID, HourlyRateID: rate.ID}
	supplies.Seed(owner,
		entities.SupplyFields{SupplyID: bumper.ID, Quantity: decimal.NewFromInt(1), UnitPrice: 24500},
		entities.SupplyFields{SupplyID: grille.ID, Quantity: decimal.NewFromInt(1), UnitPrice: 8900},
	)
	labor.Seed(owner, entities.LaborFields{WorkTypeID: bodywork.ID, Hours: decimal.RequireFromString("2.5")})

	assignments.Seed(entities.Assignment{
		ID:        1,
		Reference: "EXP-2026-0042",
		Status:    entities.StatusAssigned,
		Vehicle:   entities.Vehicle{Make: "Peugeot", Model: "308", Plate: "EF-456-GH"},
		Shocks: []entities.Shock{
			{ID: 10, Label: "Front left", PaintTypeID: paint.ID, HourlyRateID: rate.ID},
		},
	})

	store := events.NewInMemoryEventStore()
	svc := services.NewAssignmentService(assignments, supplies, labor, catalogs, store, nil, 0)

	cs, err := svc.Open(ctx, 1)
	if err != nil {
		fmt.Printf("Failed to open case: %v\n", err)
		return
	}
	defer cs.Close()

	a := cs.Assignment()
	fmt.Printf("Opened %s: %s %s, %d shock(s)\n", a.Reference, a.Vehicle.Make, a.Vehicle.Model, len(a.Shocks))
	fmt.Printf("Initial totals: %s excl. tax\n\n", entities.FormatCurrency(a.Summary.ExclTax, entities.LocaleFR))

	se, _ := cs.Editor(10)

	// Edit the bumper quantity locally, then save it.
	if err := se.Supplies.Edit(0, func(f *entities.SupplyFields) {
		f.Quantity = decimal.NewFromInt(2)
	}); err != nil {
		fmt.Printf("Edit failed: %v\n", err)
		return
	}
	fmt.Printf("Dirty rows before save: %v\n", se.Supplies.DirtyIndices())
	if err := se.Supplies.SaveRow(ctx, 0); err != nil {
		fmt.Printf("Save failed: %v\n", err)
		return
	}

	// Add a brand-new row and persist it.
	index, _ := se.Supplies.AddRow(entities.SupplyFields{
		SupplyID:  grille.ID,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 4200,
	})
	if err := se.Supplies.SaveRow(ctx, index); err != nil {
		fmt.Printf("Create failed: %v\n", err)
		return
	}
	row, _ := se.Supplies.Line(index)
	fmt.Printf("Created row got server id %d\n", row.ID.ServerID)

	// Drag the new row to the top and save the order.
	if err := se.Supplies.MoveIndex(index, 0); err != nil {
		fmt.Printf("Move failed: %v\n", err)
		return
	}
	if err := se.Supplies.SaveOrder(ctx); err != nil {
		fmt.Printf("Order save failed: %v\n", err)
		return
	}

	// A catalog entry missing from the back office, created inline.
	entry, err := cs.CreateCatalogEntry(ctx, entities.CatalogSupplies, "Custom spoiler")
	if err != nil {
		fmt.Printf("Catalog create failed: %v\n", err)
		return
	}
	fmt.Printf("New catalog entry %d resolves to %q\n", entry.ID, cs.Supplies.Label(entry.ID))

	// The saves marked the case stale; refetch the server-computed totals.
	if err := cs.RefreshIfStale(ctx); err != nil {
		fmt.Printf("Refresh failed: %v\n", err)
		return
	}
	totals := editor.Sum(se.Supplies.Lines())
	fmt.Printf("\nSupplies now: %d rows, %s excl. tax\n",
		totals.Rows, entities.FormatCurrency(totals.ExclTax, entities.LocaleFR))
	fmt.Printf("Case totals: %s excl. tax\n",
		entities.FormatCurrency(cs.Assignment().Summary.ExclTax, entities.LocaleFR))

	recorded, _ := store.ReadAllEvents(0)
	fmt.Printf("\n%d events recorded:\n", len(recorded))
	for _, e := range recorded {
		fmt.Printf("  %-30s %s\n", e.Type(), e.StreamID())
	}
}
