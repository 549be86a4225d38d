package entities

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineID identifies one line item. ServerID is authoritative once the row has
// been persisted; LocalToken marks a row that so far only exists in the edit
// buffer. A row added locally keeps its token after promotion so tracking
// keys stay stable across the create round trip.
type LineID struct {
	ServerID   int64
	LocalToken string
}

// NewLocalID returns an identity for a row that has no server record yet.
func NewLocalID() LineID {
	return LineID{LocalToken: uuid.NewString()}
}

// Persisted reports whether the server has assigned an id to this row.
func (id LineID) Persisted() bool {
	return id.ServerID > 0
}

// Key returns the stable tracking key for the row. Locally created rows keep
// their token key for their whole buffer lifetime; rows loaded from the
// server are keyed by server id.
func (id LineID) Key() string {
	if id.LocalToken != "" {
		return "loc:" + id.LocalToken
	}
	return "srv:" + strconv.FormatInt(id.ServerID, 10)
}

// Same reports whether two identities address the same row. The server id
// takes precedence as soon as both sides carry one.
func (id LineID) Same(other LineID) bool {
	if id.Persisted() && other.Persisted() {
		return id.ServerID == other.ServerID
	}
	return id.LocalToken != "" && id.LocalToken == other.LocalToken
}

// FieldSet is the editable field shape of a line item. Reference returns the
// catalog id the row points at (a supply or a work type); zero means the user
// has not chosen one yet, which blocks persistence.
type FieldSet interface {
	Reference() int64
}

// ComputedAmounts are the read-only figures the server derives for a row on
// every persist. The editor displays them and sums them, never computes them.
type ComputedAmounts struct {
	ExclTax      Amount
	Tax          Amount
	InclTax      Amount
	Obsolescence Amount
	Discount     Amount
	Recovery     Amount
}

// Line is one row of an editable collection attached to a shock.
type Line[F FieldSet] struct {
	ID      LineID
	Fields  F
	Amounts ComputedAmounts
}

// SupplyFields is the editable shape of a supply (part) row.
type SupplyFields struct {
	SupplyID        int64 // supply catalog reference
	Designation     string
	Quantity        decimal.Decimal
	UnitPrice       Amount          // editable, feeds server-side recomputation
	DiscountPct     decimal.Decimal // editable
	ObsolescencePct decimal.Decimal
	Paint           bool
	Dismantle       bool
	Replace         bool
	Recovered       bool
}

// Reference returns the supply catalog id.
func (f SupplyFields) Reference() int64 {
	return f.SupplyID
}

// LaborFields is the editable shape of a workforce row.
type LaborFields struct {
	WorkTypeID   int64 // work-type catalog reference
	HourlyRateID int64
	Hours        decimal.Decimal
	DiscountPct  decimal.Decimal
	Tier1        bool
	Tier2        bool
	Tier3        bool
}

// Reference returns the work-type catalog id.
func (f LaborFields) Reference() int64 {
	return f.WorkTypeID
}

// OwnerContext carries the identifiers and session-wide modifiers that apply
// to every line item of a shock rather than to a single row. They ride along
// on every create and update payload.
type OwnerContext struct {
	AssignmentID int64
	ShockID      int64
	PaintTypeID  int64
	HourlyRateID int64
	TaxIncluded  bool
}
