package entities

import (
	"time"
)

// Role represents a back-office user role
type Role int

const (
	RoleAdmin Role = iota
	RoleExpert
	RoleSecretary
)

// String method for Role enum
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleExpert:
		return "Expert"
	case RoleSecretary:
		return "Secretary"
	default:
		return "Unknown"
	}
}

// User is a back-office account as returned by the API.
type User struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}

// EntityKind distinguishes the organizations an assignment involves.
type EntityKind int

const (
	EntityInsurer EntityKind = iota
	EntityRepairer
	EntityOrganization
)

// String method for EntityKind enum
func (k EntityKind) String() string {
	switch k {
	case EntityInsurer:
		return "Insurer"
	case EntityRepairer:
		return "Repairer"
	case EntityOrganization:
		return "Organization"
	default:
		return "Unknown"
	}
}

// Entity is an insurer, repairer or partner organization.
type Entity struct {
	ID      int64
	Kind    EntityKind
	Name    string
	Siret   string
	Address string
	City    string
	Zip     string
}

// Vehicle is the inspected vehicle of an assignment.
type Vehicle struct {
	ID                int64
	Plate             string
	VIN               string
	Make              string
	Model             string
	FirstRegistration time.Time
	MileageKM         int64
}

// Shock is a point of damage on the vehicle. It owns the two editable
// line-item collections of the editor plus the session-wide modifiers that
// apply to every row.
type Shock struct {
	ID           int64
	Label        string
	PaintTypeID  int64
	HourlyRateID int64
	TaxIncluded  bool
	Supplies     []Line[SupplyFields]
	Labor        []Line[LaborFields]
}

// Owner returns the context carried on every persistence call for this
// shock's rows.
func (s Shock) Owner(assignmentID int64) OwnerContext {
	return OwnerContext{
		AssignmentID: assignmentID,
		ShockID:      s.ID,
		PaintTypeID:  s.PaintTypeID,
		HourlyRateID: s.HourlyRateID,
		TaxIncluded:  s.TaxIncluded,
	}
}

// AssignmentStatus represents the stage of the expertise workflow
type AssignmentStatus int

const (
	StatusCreated AssignmentStatus = iota
	StatusAssigned
	StatusAscertained
	StatusReportIssued
	StatusInvoiced
	StatusClosed
	StatusCancelled
)

// String method for AssignmentStatus enum
func (s AssignmentStatus) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusAssigned:
		return "Assigned"
	case StatusAscertained:
		return "Ascertained"
	case StatusReportIssued:
		return "ReportIssued"
	case StatusInvoiced:
		return "Invoiced"
	case StatusClosed:
		return "Closed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// workflowNext documents the expertise workflow as the server enforces it.
// The client only uses it for display: which actions to offer on a case.
var workflowNext = map[AssignmentStatus][]AssignmentStatus{
	StatusCreated:      {StatusAssigned, StatusCancelled},
	StatusAssigned:     {StatusAscertained, StatusCancelled},
	StatusAscertained:  {StatusReportIssued, StatusCancelled},
	StatusReportIssued: {StatusInvoiced, StatusCancelled},
	StatusInvoiced:     {StatusClosed},
	StatusClosed:       nil,
	StatusCancelled:    nil,
}

// NextStatuses returns the workflow stages reachable from s.
func (s AssignmentStatus) NextStatuses() []AssignmentStatus {
	next := workflowNext[s]
	out := make([]AssignmentStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the workflow allows moving from s to target.
func (s AssignmentStatus) CanTransition(target AssignmentStatus) bool {
	for _, n := range workflowNext[s] {
		if n == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the workflow ends at s.
func (s AssignmentStatus) Terminal() bool {
	return len(workflowNext[s]) == 0
}

// FinancialSummary carries the server-computed case totals. They are only
// authoritative after a round trip, which is why every persisted mutation
// triggers an assignment refresh.
type FinancialSummary struct {
	ExclTax      Amount
	Tax          Amount
	InclTax      Amount
	Obsolescence Amount
	Discount     Amount
	Recovery     Amount
}

// Assignment is one expertise case.
type Assignment struct {
	ID        int64
	Reference string
	Status    AssignmentStatus
	Vehicle   Vehicle
	Insurer   Entity
	Repairer  Entity
	Expert    User
	Shocks    []Shock
	Summary   FinancialSummary
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ascertainment is a quality/condition report attached to an assignment.
type Ascertainment struct {
	ID           int64
	AssignmentID int64
	Label        string
	Notes        string
	CreatedAt    time.Time
}

// InvoiceStatus represents the billing state of an invoice
type InvoiceStatus int

const (
	InvoiceDraft InvoiceStatus = iota
	InvoiceIssued
	InvoicePaid
	InvoiceVoided
)

// String method for InvoiceStatus enum
func (s InvoiceStatus) String() string {
	switch s {
	case InvoiceDraft:
		return "Draft"
	case InvoiceIssued:
		return "Issued"
	case InvoicePaid:
		return "Paid"
	case InvoiceVoided:
		return "Voided"
	default:
		return "Unknown"
	}
}

// Invoice is a billing document generated server-side from an assignment.
type Invoice struct {
	ID           int64
	AssignmentID int64
	Number       string
	Status       InvoiceStatus
	ExclTax      Amount
	Tax          Amount
	InclTax      Amount
	IssuedAt     time.Time
}
