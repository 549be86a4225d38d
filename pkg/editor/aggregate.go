package editor

import (
	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

// Totals are the display-only sums over the current buffer. They carry no
// state of their own: every mutation of the buffer warrants a fresh Sum.
type Totals struct {
	Rows         int
	ExclTax      entities.Amount
	Tax          entities.Amount
	InclTax      entities.Amount
	Obsolescence entities.Amount
	Discount     entities.Amount
	Recovery     entities.Amount
}

// Sum computes the totals over a list of rows. A row whose amounts the server
// has not computed yet contributes zeros.
func Sum[F entities.FieldSet](lines []entities.Line[F]) Totals {
	t := Totals{Rows: len(lines)}
	for i := range lines {
		a := lines[i].Amounts
		t.ExclTax += a.ExclTax
		t.Tax += a.Tax
		t.InclTax += a.InclTax
		t.Obsolescence += a.Obsolescence
		t.Discount += a.Discount
		t.Recovery += a.Recovery
	}
	return t
}

// Totals recomputes the aggregate figures from the session's current buffer.
func (s *Session[F]) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Sum(s.lines)
}
