// Package export renders an expertise case to an XLSX workbook: one overview
// sheet, then one sheet per shock with its supply and labor tables.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

// Options tune the workbook rendering. Label funcs resolve catalog ids to
// display labels; nil falls back to the raw id.
type Options struct {
	Locale        entities.Locale
	SupplyLabel   func(int64) string
	WorkTypeLabel func(int64) string
}

func (o Options) supplyLabel(id int64) string {
	if o.SupplyLabel != nil {
		return o.SupplyLabel(id)
	}
	return fmt.Sprintf("#%d", id)
}

func (o Options) workTypeLabel(id int64) string {
	if o.WorkTypeLabel != nil {
		return o.WorkTypeLabel(id)
	}
	return fmt.Sprintf("#%d", id)
}

// Workbook builds the XLSX file for an assignment. The caller owns the file
// and must Close it.
func Workbook(assignment entities.Assignment, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Case"); err != nil {
		return nil, fmt.Errorf("failed to name case sheet: %w", err)
	}
	if err := writeCaseSheet(f, assignment, opts); err != nil {
		return nil, err
	}

	for i, shock := range assignment.Shocks {
		name := fmt.Sprintf("Shock %d - %s", i+1, shock.Label)
		if len(name) > 31 { // sheet name limit
			name = name[:31]
		}
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet for shock %d: %w", shock.ID, err)
		}
		if err := writeShockSheet(f, name, shock, opts); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Save builds the workbook and writes it to path.
func Save(path string, assignment entities.Assignment, opts Options) error {
	f, err := Workbook(assignment, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeCaseSheet(f *excelize.File, a entities.Assignment, opts Options) error {
	rows := [][]interface{}{
		{"Reference", a.Reference},
		{"Status", a.Status.String()},
		{"Vehicle", fmt.Sprintf("%s %s (%s)", a.Vehicle.Make, a.Vehicle.Model, a.Vehicle.Plate)},
		{"Insurer", a.Insurer.Name},
		{"Repairer", a.Repairer.Name},
		{"Expert", a.Expert.Name},
		{},
		{"Total excl. tax", entities.FormatCurrency(a.Summary.ExclTax, opts.Locale)},
		{"Tax", entities.FormatCurrency(a.Summary.Tax, opts.Locale)},
		{"Total incl. tax", entities.FormatCurrency(a.Summary.InclTax, opts.Locale)},
		{"Obsolescence", entities.FormatCurrency(a.Summary.Obsolescence, opts.Locale)},
		{"Discount", entities.FormatCurrency(a.Summary.Discount, opts.Locale)},
		{"Recovery", entities.FormatCurrency(a.Summary.Recovery, opts.Locale)},
	}
	return writeRows(f, "Case", 1, rows)
}

func writeShockSheet(f *excelize.File, sheet string, shock entities.Shock, opts Options) error {
	row := 1
	supplyRows := [][]interface{}{
		{"Supplies"},
		{"Designation", "Quantity", "Unit price", "Discount %", "Obsolescence %", "Excl. tax", "Incl. tax"},
	}
	for _, line := range shock.Supplies {
		designation := line.Fields.Designation
		if designation == "" {
			designation = opts.supplyLabel(line.Fields.SupplyID)
		}
		supplyRows = append(supplyRows, []interface{}{
			designation,
			line.Fields.Quantity.String(),
			entities.FormatCompact(line.Fields.UnitPrice),
			line.Fields.DiscountPct.String(),
			line.Fields.ObsolescencePct.String(),
			entities.FormatCompact(line.Amounts.ExclTax),
			entities.FormatCompact(line.Amounts.InclTax),
		})
	}
	if err := writeRows(f, sheet, row, supplyRows); err != nil {
		return err
	}
	row += len(supplyRows) + 1

	laborRows := [][]interface{}{
		{"Labor"},
		{"Work type", "Hours", "Discount %", "Excl. tax", "Incl. tax"},
	}
	for _, line := range shock.Labor {
		laborRows = append(laborRows, []interface{}{
			opts.workTypeLabel(line.Fields.WorkTypeID),
			line.Fields.Hours.String(),
			line.Fields.DiscountPct.String(),
			entities.FormatCompact(line.Amounts.ExclTax),
			entities.FormatCompact(line.Amounts.InclTax),
		})
	}
	return writeRows(f, sheet, row, laborRows)
}

func writeRows(f *excelize.File, sheet string, startRow int, rows [][]interface{}) error {
	for i, cells := range rows {
		for j, value := range cells {
			cell, err := excelize.CoordinatesToCellName(j+1, startRow+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
