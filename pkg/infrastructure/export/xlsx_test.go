package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

func testAssignment() entities.Assignment {
	return entities.Assignment{
		ID:        1,
		Reference: "EXP-2026-0001",
		Status:    entities.StatusAscertained,
		Vehicle:   entities.Vehicle{Make: "Renault", Model: "Clio", Plate: "AB-123-CD"},
		Insurer:   entities.Entity{Name: "AssurOne"},
		Repairer:  entities.Entity{Name: "Garage Martin"},
		Expert:    entities.User{Name: "J. Dupont"},
		Shocks: []entities.Shock{
			{
				ID:    10,
				Label: "Front",
				Supplies: []entities.Line[entities.SupplyFields]{
					{
						ID: entities.LineID{ServerID: 1},
						Fields: entities.SupplyFields{
							SupplyID:  100,
							Quantity:  decimal.NewFromInt(1),
							UnitPrice: 10000,
						},
						Amounts: entities.ComputedAmounts{ExclTax: 10000, InclTax: 12000},
					},
				},
				Labor: []entities.Line[entities.LaborFields]{
					{
						ID:      entities.LineID{ServerID: 2},
						Fields:  entities.LaborFields{WorkTypeID: 50, Hours: decimal.NewFromInt(2)},
						Amounts: entities.ComputedAmounts{ExclTax: 12000, InclTax: 14400},
					},
				},
			},
		},
		Summary: entities.FinancialSummary{ExclTax: 22000, Tax: 4400, InclTax: 26400},
	}
}

func TestWorkbook(t *testing.T) {
	f, err := Workbook(testAssignment(), Options{
		Locale:        entities.LocaleFR,
		SupplyLabel:   func(int64) string { return "Front bumper" },
		WorkTypeLabel: func(int64) string { return "Bodywork" },
	})
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Case" || sheets[1] != "Shock 1 - Front" {
		t.Fatalf("Unexpected sheets %v", sheets)
	}

	checkCell := func(sheet, cell, want string) {
		t.Helper()
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue %s!%s failed: %v", sheet, cell, err)
		}
		if got != want {
			t.Errorf("Expected %s!%s to be %q, got %q", sheet, cell, want, got)
		}
	}

	checkCell("Case", "B1", "EXP-2026-0001")
	checkCell("Case", "B2", "Ascertained")
	checkCell("Case", "B3", "Renault Clio (AB-123-CD)")
	checkCell("Case", "B8", "220,00 €")

	// Supply table: header on row 2, first row on row 3.
	checkCell("Shock 1 - Front", "A3", "Front bumper")
	checkCell("Shock 1 - Front", "F3", "100.00")
	// Labor table follows the supply table after a blank row.
	checkCell("Shock 1 - Front", "A5", "Labor")
	checkCell("Shock 1 - Front", "A7", "Bodywork")
	checkCell("Shock 1 - Front", "B7", "2")
}

func TestWorkbook_UnresolvedLabelFallsBackToID(t *testing.T) {
	f, err := Workbook(testAssignment(), Options{})
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Shock 1 - Front", "A3")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if got != "#100" {
		t.Errorf("Expected id fallback #100, got %q", got)
	}
}

func TestSave(t *testing.T) {
	path := t.TempDir() + "/case.xlsx"
	if err := Save(path, testAssignment(), Options{Locale: entities.LocaleEN}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()
	got, err := f.GetCellValue("Case", "B1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if got != "EXP-2026-0001" {
		t.Errorf("Expected saved reference, got %q", got)
	}
}
