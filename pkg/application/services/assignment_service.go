package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mbarret/expertdesk/pkg/catalog"
	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
	"github.com/mbarret/expertdesk/pkg/editor"
	"github.com/mbarret/expertdesk/pkg/infrastructure/events"
	"github.com/mbarret/expertdesk/pkg/infrastructure/logging"
)

// catalogPageSize is the base page loaded per catalog when a case opens.
// Entries outside it are resolved individually on demand.
const catalogPageSize = 200

// AssignmentService opens expertise cases for editing. It owns the
// repositories and hands out a CaseSession per opened case.
type AssignmentService struct {
	assignments repositories.AssignmentRepository
	supplies    repositories.LineItemRepository[entities.SupplyFields]
	labor       repositories.LineItemRepository[entities.LaborFields]
	catalogs    repositories.CatalogRepository
	events      events.EventStore
	log         *logging.Logger
	saveTimeout time.Duration
}

// NewAssignmentService wires the service. events may be nil when no listener
// cares about edit events; saveTimeout zero falls back to the editor default.
func NewAssignmentService(
	assignments repositories.AssignmentRepository,
	supplies repositories.LineItemRepository[entities.SupplyFields],
	labor repositories.LineItemRepository[entities.LaborFields],
	catalogs repositories.CatalogRepository,
	eventStore events.EventStore,
	log *logging.Logger,
	saveTimeout time.Duration,
) *AssignmentService {
	if log == nil {
		log = logging.Nop()
	}
	return &AssignmentService{
		assignments: assignments,
		supplies:    supplies,
		labor:       labor,
		catalogs:    catalogs,
		events:      eventStore,
		log:         log,
		saveTimeout: saveTimeout,
	}
}

// ShockEditor bundles the two edit sessions of one shock.
type ShockEditor struct {
	ShockID  int64
	Label    string
	Supplies *editor.Session[entities.SupplyFields]
	Labor    *editor.Session[entities.LaborFields]
}

// CaseSession is one opened expertise case: the case record, an editor per
// shock, and a label resolver per catalog. Sessions mark the case stale after
// every persisted mutation; the owner decides when to refetch.
type CaseSession struct {
	svc *AssignmentService

	Supplies    *catalog.Resolver
	WorkTypes   *catalog.Resolver
	PaintTypes  *catalog.Resolver
	HourlyRates *catalog.Resolver

	mu         sync.Mutex
	assignment entities.Assignment
	editors    []*ShockEditor
	stale      bool
}

// Open loads an assignment and builds its editing surface.
func (s *AssignmentService) Open(ctx context.Context, assignmentID int64) (*CaseSession, error) {
	assignment, err := s.assignments.Get(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment %d: %w", assignmentID, err)
	}

	cs := &CaseSession{svc: s, assignment: assignment}
	cs.Supplies = s.newResolver(ctx, entities.CatalogSupplies)
	cs.WorkTypes = s.newResolver(ctx, entities.CatalogWorkTypes)
	cs.PaintTypes = s.newResolver(ctx, entities.CatalogPaintTypes)
	cs.HourlyRates = s.newResolver(ctx, entities.CatalogHourlyRates)

	for _, shock := range assignment.Shocks {
		cs.editors = append(cs.editors, s.newShockEditor(assignment.ID, shock, cs))
	}
	cs.resolveReferences(ctx)

	s.log.Info("Opened assignment",
		"assignment", assignment.Reference,
		"status", assignment.Status.String(),
		"shocks", len(assignment.Shocks))
	return cs, nil
}

// newResolver loads the base page of a catalog. A failed page load degrades
// to on-demand resolution of every id.
func (s *AssignmentService) newResolver(ctx context.Context, kind entities.CatalogKind) *catalog.Resolver {
	base, err := s.catalogs.Page(ctx, kind, entities.CatalogFilter{PageSize: catalogPageSize})
	if err != nil {
		s.log.Warn("Failed to load catalog page", "catalog", kind.Slug(), "error", err)
		base = nil
	}
	return catalog.NewResolver(kind, base, s.catalogs, s.log)
}

func (s *AssignmentService) newShockEditor(assignmentID int64, shock entities.Shock, cs *CaseSession) *ShockEditor {
	owner := shock.Owner(assignmentID)
	cfg := editor.SessionConfig{
		SaveTimeout: s.saveTimeout,
		Logger:      s.log.With("shock", shock.ID),
		Events:      s.events,
		OnRefresh:   cs.markStale,
	}

	se := &ShockEditor{
		ShockID:  shock.ID,
		Label:    shock.Label,
		Supplies: editor.NewSessionWithConfig(editor.KindSupply, owner, s.supplies, cfg),
		Labor:    editor.NewSessionWithConfig(editor.KindLabor, owner, s.labor, cfg),
	}
	se.Supplies.Initialize(shock.Supplies)
	se.Labor.Initialize(shock.Labor)
	return se
}

// resolveReferences makes every id the loaded rows point at resolvable, so
// the table renders labels instead of placeholders.
func (cs *CaseSession) resolveReferences(ctx context.Context) {
	var supplyIDs, workTypeIDs, paintTypeIDs, rateIDs []int64
	for _, shock := range cs.assignment.Shocks {
		paintTypeIDs = append(paintTypeIDs, shock.PaintTypeID)
		rateIDs = append(rateIDs, shock.HourlyRateID)
		for _, line := range shock.Supplies {
			supplyIDs = append(supplyIDs, line.Fields.SupplyID)
		}
		for _, line := range shock.Labor {
			workTypeIDs = append(workTypeIDs, line.Fields.WorkTypeID)
			rateIDs = append(rateIDs, line.Fields.HourlyRateID)
		}
	}
	cs.Supplies.Resolve(ctx, supplyIDs...)
	cs.WorkTypes.Resolve(ctx, workTypeIDs...)
	cs.PaintTypes.Resolve(ctx, paintTypeIDs...)
	cs.HourlyRates.Resolve(ctx, rateIDs...)
}

// Assignment returns the case record as of the last load or refresh.
func (cs *CaseSession) Assignment() entities.Assignment {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.assignment
}

// Editors returns the per-shock editors in case order.
func (cs *CaseSession) Editors() []*ShockEditor {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([]*ShockEditor, len(cs.editors))
	copy(out, cs.editors)
	return out
}

// Editor returns the editor of one shock.
func (cs *CaseSession) Editor(shockID int64) (*ShockEditor, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for _, se := range cs.editors {
		if se.ShockID == shockID {
			return se, true
		}
	}
	return nil, false
}

func (cs *CaseSession) markStale() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.stale = true
}

// Stale reports whether a persisted mutation has outdated the case record
// since the last refresh. Server-computed figures (financial summary) are
// only trustworthy when this is false.
func (cs *CaseSession) Stale() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.stale
}

// Refresh refetches the case record. Line buffers are left alone: unsaved
// local edits survive a refresh, only the surrounding record moves.
func (cs *CaseSession) Refresh(ctx context.Context) error {
	assignment, err := cs.svc.assignments.Get(ctx, cs.assignment.ID)
	if err != nil {
		return fmt.Errorf("failed to refresh assignment %d: %w", cs.assignment.ID, err)
	}

	cs.mu.Lock()
	cs.assignment = assignment
	cs.stale = false
	cs.mu.Unlock()
	return nil
}

// RefreshIfStale refetches the case record only when a mutation outdated it.
func (cs *CaseSession) RefreshIfStale(ctx context.Context) error {
	if !cs.Stale() {
		return nil
	}
	return cs.Refresh(ctx)
}

// ReloadLines refetches the case and reinitializes every line buffer from it,
// discarding unsaved local edits.
func (cs *CaseSession) ReloadLines(ctx context.Context) error {
	if err := cs.Refresh(ctx); err != nil {
		return err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	for _, shock := range cs.assignment.Shocks {
		for _, se := range cs.editors {
			if se.ShockID != shock.ID {
				continue
			}
			se.Supplies.Initialize(shock.Supplies)
			se.Labor.Initialize(shock.Labor)
		}
	}
	return nil
}

// CreateCatalogEntry adds an entry the catalog is missing, e.g. a supply
// referenced on a repair order that the back office never recorded. The new
// entry is merged into the matching resolver so rows can reference it
// immediately.
func (cs *CaseSession) CreateCatalogEntry(
	ctx context.Context,
	kind entities.CatalogKind,
	label string,
) (entities.CatalogEntry, error) {
	entry, err := cs.svc.catalogs.CreateEntry(ctx, kind, label)
	if err != nil {
		return entities.CatalogEntry{}, fmt.Errorf("failed to create %s entry: %w", kind.Slug(), err)
	}

	cs.resolverFor(kind).Add(entry)
	if cs.svc.events != nil {
		event := events.NewCatalogEntryCreatedEvent(kind, entry)
		if appendErr := cs.svc.events.AppendEvent(event.StreamID(), event); appendErr != nil {
			cs.svc.log.Warn("Failed to append catalog event", "error", appendErr)
		}
	}
	cs.svc.log.Info("Created catalog entry", "catalog", kind.Slug(), "id", entry.ID, "label", entry.Label)
	return entry, nil
}

func (cs *CaseSession) resolverFor(kind entities.CatalogKind) *catalog.Resolver {
	switch kind {
	case entities.CatalogWorkTypes:
		return cs.WorkTypes
	case entities.CatalogPaintTypes:
		return cs.PaintTypes
	case entities.CatalogHourlyRates:
		return cs.HourlyRates
	default:
		return cs.Supplies
	}
}

// Close tears down every edit session. Persistence completions still in
// flight observe the closed flag and discard their results.
func (cs *CaseSession) Close() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for _, se := range cs.editors {
		se.Supplies.Close()
		se.Labor.Close()
	}
}
