package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mbarret/expertdesk/pkg/application/services"
	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/editor"
)

// renderCase writes a human-readable view of an opened case: the record, then
// each shock's tables with their running totals.
func renderCase(w io.Writer, cs *services.CaseSession, locale entities.Locale) {
	a := cs.Assignment()

	fmt.Fprintf(w, "Case %s  [%s]\n", a.Reference, a.Status)
	fmt.Fprintf(w, "  Vehicle:  %s %s (%s)\n", a.Vehicle.Make, a.Vehicle.Model, a.Vehicle.Plate)
	fmt.Fprintf(w, "  Insurer:  %s\n", a.Insurer.Name)
	fmt.Fprintf(w, "  Repairer: %s\n", a.Repairer.Name)
	fmt.Fprintf(w, "  Expert:   %s\n", a.Expert.Name)
	if next := a.Status.NextStatuses(); len(next) > 0 {
		fmt.Fprintf(w, "  Next:    ")
		for _, status := range next {
			fmt.Fprintf(w, " %s", status)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	for _, se := range cs.Editors() {
		fmt.Fprintf(w, "Shock: %s\n", se.Label)
		renderSupplies(w, se, cs, locale)
		renderLabor(w, se, cs, locale)
	}

	fmt.Fprintf(w, "Case totals: %s excl. tax / %s incl. tax",
		entities.FormatCurrency(a.Summary.ExclTax, locale),
		entities.FormatCurrency(a.Summary.InclTax, locale))
	if a.Summary.Recovery != 0 {
		fmt.Fprintf(w, " (recovery %s)", entities.FormatCurrency(a.Summary.Recovery, locale))
	}
	fmt.Fprintln(w)
}

func renderSupplies(w io.Writer, se *services.ShockEditor, cs *services.CaseSession, locale entities.Locale) {
	lines := se.Supplies.Lines()
	if len(lines) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  \tDesignation\tQty\tUnit\tExcl. tax\tIncl. tax")
	for i, line := range lines {
		designation := line.Fields.Designation
		if designation == "" {
			designation = cs.Supplies.Label(line.Fields.SupplyID)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			rowMarker(se.Supplies, i),
			designation,
			line.Fields.Quantity,
			entities.FormatCompact(line.Fields.UnitPrice),
			entities.FormatCompact(line.Amounts.ExclTax),
			entities.FormatCompact(line.Amounts.InclTax))
	}
	tw.Flush()

	totals := se.Supplies.Totals()
	fmt.Fprintf(w, "  Supplies: %d rows, %s excl. tax\n\n",
		totals.Rows, entities.FormatCurrency(totals.ExclTax, locale))
}

func renderLabor(w io.Writer, se *services.ShockEditor, cs *services.CaseSession, locale entities.Locale) {
	lines := se.Labor.Lines()
	if len(lines) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  \tWork type\tHours\tExcl. tax\tIncl. tax")
	for i, line := range lines {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			rowMarker(se.Labor, i),
			cs.WorkTypes.Label(line.Fields.WorkTypeID),
			line.Fields.Hours,
			entities.FormatCompact(line.Amounts.ExclTax),
			entities.FormatCompact(line.Amounts.InclTax))
	}
	tw.Flush()

	totals := se.Labor.Totals()
	fmt.Fprintf(w, "  Labor: %d rows, %s excl. tax\n\n",
		totals.Rows, entities.FormatCurrency(totals.ExclTax, locale))
}

// rowMarker flags unsaved state the way the table views do: * for a new row,
// ~ for a dirty one.
func rowMarker[F entities.FieldSet](s *editor.Session[F], index int) string {
	switch {
	case s.IsNew(index):
		return "*"
	case s.IsDirty(index):
		return "~"
	default:
		return " "
	}
}
