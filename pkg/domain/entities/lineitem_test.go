package entities

import "testing"

func TestLineID_Lifecycle(t *testing.T) {
	id := NewLocalID()
	if id.Persisted() {
		t.Error("Expected a fresh local id to be unpersisted")
	}
	if id.LocalToken == "" {
		t.Fatal("Expected a local token to be generated")
	}

	keyBefore := id.Key()

	// Promotion after a successful create keeps the tracking key stable.
	id.ServerID = 42
	if !id.Persisted() {
		t.Error("Expected id with server id to be persisted")
	}
	if id.Key() != keyBefore {
		t.Errorf("Expected tracking key to survive promotion, got %s then %s", keyBefore, id.Key())
	}
}

func TestLineID_Same(t *testing.T) {
	local := NewLocalID()
	promoted := local
	promoted.ServerID = 7

	testCases := []struct {
		name     string
		a, b     LineID
		expected bool
	}{
		{"same server id", LineID{ServerID: 1}, LineID{ServerID: 1}, true},
		{"different server id", LineID{ServerID: 1}, LineID{ServerID: 2}, false},
		{"same local token", local, local, true},
		{"local vs promoted twin", local, promoted, true},
		{"server id wins when both persisted", LineID{ServerID: 3, LocalToken: "x"}, LineID{ServerID: 4, LocalToken: "x"}, false},
		{"two unrelated locals", NewLocalID(), NewLocalID(), false},
		{"zero ids never match", LineID{}, LineID{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Same(tc.b); got != tc.expected {
				t.Errorf("Expected Same=%v, got %v", tc.expected, got)
			}
		})
	}
}

func TestLineID_KeyDistinguishesServerRows(t *testing.T) {
	a := LineID{ServerID: 10}
	b := LineID{ServerID: 20}
	if a.Key() == b.Key() {
		t.Error("Expected distinct server rows to have distinct keys")
	}
}

func TestFieldSet_Reference(t *testing.T) {
	var s FieldSet = SupplyFields{SupplyID: 5}
	if s.Reference() != 5 {
		t.Errorf("Expected supply reference 5, got %d", s.Reference())
	}
	var l FieldSet = LaborFields{WorkTypeID: 9}
	if l.Reference() != 9 {
		t.Errorf("Expected work-type reference 9, got %d", l.Reference())
	}
}

func TestShock_Owner(t *testing.T) {
	shock := Shock{
		ID:           3,
		PaintTypeID:  11,
		HourlyRateID: 12,
		TaxIncluded:  true,
	}
	owner := shock.Owner(99)
	if owner.AssignmentID != 99 || owner.ShockID != 3 {
		t.Errorf("Expected owner to carry assignment and shock ids, got %+v", owner)
	}
	if owner.PaintTypeID != 11 || owner.HourlyRateID != 12 || !owner.TaxIncluded {
		t.Errorf("Expected session-wide modifiers to ride along, got %+v", owner)
	}
}
