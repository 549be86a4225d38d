package entities

import "testing"

func TestAssignmentStatus_Workflow(t *testing.T) {
	testCases := []struct {
		name    string
		from    AssignmentStatus
		to      AssignmentStatus
		allowed bool
	}{
		{"created to assigned", StatusCreated, StatusAssigned, true},
		{"created to cancelled", StatusCreated, StatusCancelled, true},
		{"created cannot skip to invoiced", StatusCreated, StatusInvoiced, false},
		{"assigned to ascertained", StatusAssigned, StatusAscertained, true},
		{"ascertained to report", StatusAscertained, StatusReportIssued, true},
		{"report to invoiced", StatusReportIssued, StatusInvoiced, true},
		{"invoiced to closed", StatusInvoiced, StatusClosed, true},
		{"invoiced cannot cancel", StatusInvoiced, StatusCancelled, false},
		{"closed is final", StatusClosed, StatusCreated, false},
		{"cancelled is final", StatusCancelled, StatusAssigned, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransition(tc.to); got != tc.allowed {
				t.Errorf("Expected %s -> %s allowed=%v, got %v", tc.from, tc.to, tc.allowed, got)
			}
		})
	}
}

func TestAssignmentStatus_Terminal(t *testing.T) {
	if !StatusClosed.Terminal() {
		t.Error("Expected Closed to be terminal")
	}
	if !StatusCancelled.Terminal() {
		t.Error("Expected Cancelled to be terminal")
	}
	if StatusCreated.Terminal() {
		t.Error("Expected Created to have successors")
	}
}

func TestAssignmentStatus_NextStatusesIsACopy(t *testing.T) {
	next := StatusCreated.NextStatuses()
	if len(next) != 2 {
		t.Fatalf("Expected 2 successors for Created, got %d", len(next))
	}
	next[0] = StatusClosed
	if StatusCreated.NextStatuses()[0] == StatusClosed {
		t.Error("Expected NextStatuses to return a copy, workflow table was mutated")
	}
}

func TestEnumStrings(t *testing.T) {
	if StatusReportIssued.String() != "ReportIssued" {
		t.Errorf("Unexpected status string: %s", StatusReportIssued)
	}
	if RoleExpert.String() != "Expert" {
		t.Errorf("Unexpected role string: %s", RoleExpert)
	}
	if EntityRepairer.String() != "Repairer" {
		t.Errorf("Unexpected entity kind string: %s", EntityRepairer)
	}
	if InvoicePaid.String() != "Paid" {
		t.Errorf("Unexpected invoice status string: %s", InvoicePaid)
	}
	if CatalogHourlyRates.Slug() != "hourly-rates" {
		t.Errorf("Unexpected catalog slug: %s", CatalogHourlyRates.Slug())
	}
}
