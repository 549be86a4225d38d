package events

import (
	"strconv"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

const (
	RowCreatedEvent = "row.created"
	RowUpdatedEvent = "row.updated"
	RowDeletedEvent = "row.deleted"

	OrderSavedEvent = "order.saved"

	AssignmentRefreshRequestedEvent = "assignment.refresh.requested"

	CatalogEntryCreatedEvent = "catalog.entry.created"
)

type RowCreated struct {
	ShockID  int64  `json:"shock_id"`
	ServerID int64  `json:"server_id"`
	Kind     string `json:"kind"` // "supply" or "labor"
}

type RowUpdated struct {
	ShockID  int64  `json:"shock_id"`
	ServerID int64  `json:"server_id"`
	Kind     string `json:"kind"`
}

type RowDeleted struct {
	ShockID  int64  `json:"shock_id"`
	ServerID int64  `json:"server_id"`
	Kind     string `json:"kind"`
}

type OrderSaved struct {
	ShockID    int64   `json:"shock_id"`
	Kind       string  `json:"kind"`
	OrderedIDs []int64 `json:"ordered_ids"`
}

type AssignmentRefreshRequested struct {
	AssignmentID int64 `json:"assignment_id"`
}

type CatalogEntryCreated struct {
	Kind  string                `json:"kind"`
	Entry entities.CatalogEntry `json:"entry"`
}

func shockStream(shockID int64) string {
	return "shock:" + strconv.FormatInt(shockID, 10)
}

func assignmentStream(assignmentID int64) string {
	return "assignment:" + strconv.FormatInt(assignmentID, 10)
}

func NewRowCreatedEvent(shockID, serverID int64, kind string) Event {
	return NewEvent(RowCreatedEvent, shockStream(shockID), RowCreated{ShockID: shockID, ServerID: serverID, Kind: kind})
}

func NewRowUpdatedEvent(shockID, serverID int64, kind string) Event {
	return NewEvent(RowUpdatedEvent, shockStream(shockID), RowUpdated{ShockID: shockID, ServerID: serverID, Kind: kind})
}

func NewRowDeletedEvent(shockID, serverID int64, kind string) Event {
	return NewEvent(RowDeletedEvent, shockStream(shockID), RowDeleted{ShockID: shockID, ServerID: serverID, Kind: kind})
}

func NewOrderSavedEvent(shockID int64, kind string, orderedIDs []int64) Event {
	return NewEvent(OrderSavedEvent, shockStream(shockID), OrderSaved{ShockID: shockID, Kind: kind, OrderedIDs: orderedIDs})
}

func NewAssignmentRefreshRequestedEvent(assignmentID int64) Event {
	return NewEvent(
		AssignmentRefreshRequestedEvent,
		assignmentStream(assignmentID),
		AssignmentRefreshRequested{AssignmentID: assignmentID},
	)
}

func NewCatalogEntryCreatedEvent(kind entities.CatalogKind, entry entities.CatalogEntry) Event {
	return NewEvent(CatalogEntryCreatedEvent, "catalog:"+kind.Slug(), CatalogEntryCreated{
		Kind:  kind.Slug(),
		Entry: entry,
	})
}
