package editor

import (
	"sort"
	"sync"
	"time"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
	"github.com/mbarret/expertdesk/pkg/infrastructure/events"
	"github.com/mbarret/expertdesk/pkg/infrastructure/logging"
)

// Collection kinds, used for event payloads and log context.
const (
	KindSupply = "supply"
	KindLabor  = "labor"
)

// SessionConfig holds the tunable collaborators of an edit session.
type SessionConfig struct {
	// SaveTimeout is the bounded wait for one persistence call. Exceeding it
	// surfaces ErrTimeout while the row stays dirty.
	SaveTimeout time.Duration
	// Logger receives persistence failures. Defaults to a no-op logger.
	Logger *logging.Logger
	// Events, when set, receives an event per durable mutation.
	Events events.EventStore
	// OnRefresh is invoked after any mutation that changes server-computed
	// figures, so the owning page can refetch the case record.
	OnRefresh func()
}

// DefaultSaveTimeout bounds a persistence call when no explicit timeout is
// configured.
const DefaultSaveTimeout = 30 * time.Second

// Session is the editable buffer over one line-item collection of a shock.
// It holds a working copy of the server list, isolated from the source of
// truth until a row is explicitly saved.
//
// Rows are tracked by identity, not by position: reordering the buffer never
// invalidates the dirty/new bookkeeping, and a save completing after a
// reorder still reconciles the row it was dispatched for.
type Session[F entities.FieldSet] struct {
	kind  string
	owner entities.OwnerContext
	repo  repositories.LineItemRepository[F]

	cfg SessionConfig

	mu           sync.Mutex
	lines        []entities.Line[F]
	dirty        map[string]struct{}
	fresh        map[string]struct{}
	orderPending bool
	closed       bool
}

// NewSession creates an edit session with default configuration.
func NewSession[F entities.FieldSet](
	kind string,
	owner entities.OwnerContext,
	repo repositories.LineItemRepository[F],
) *Session[F] {
	return NewSessionWithConfig(kind, owner, repo, SessionConfig{})
}

// NewSessionWithConfig creates an edit session with custom configuration.
func NewSessionWithConfig[F entities.FieldSet](
	kind string,
	owner entities.OwnerContext,
	repo repositories.LineItemRepository[F],
	cfg SessionConfig,
) *Session[F] {
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultSaveTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	return &Session[F]{
		kind:  kind,
		owner: owner,
		repo:  repo,
		cfg:   cfg,
		dirty: make(map[string]struct{}),
		fresh: make(map[string]struct{}),
	}
}

// Owner returns the context carried on every persistence call.
func (s *Session[F]) Owner() entities.OwnerContext {
	return s.owner
}

// Initialize replaces the buffer wholesale with a new authoritative list.
// Any unsaved local edits are discarded: when the source of truth changes
// underneath the session, stale local state must not survive it.
func (s *Session[F]) Initialize(lines []entities.Line[F]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make([]entities.Line[F], len(lines))
	copy(s.lines, lines)
	s.dirty = make(map[string]struct{})
	s.fresh = make(map[string]struct{})
	s.orderPending = false
}

// Len returns the number of rows in the buffer.
func (s *Session[F]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Lines returns a snapshot of the buffer in its current order.
func (s *Session[F]) Lines() []entities.Line[F] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.Line[F], len(s.lines))
	copy(out, s.lines)
	return out
}

// Line returns the row at index.
func (s *Session[F]) Line(index int) (entities.Line[F], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		var zero entities.Line[F]
		return zero, ErrRowOutOfRange
	}
	return s.lines[index], nil
}

// Edit applies a field mutation to the row at index and marks it dirty.
// Nothing is sent to the server; persistence is an explicit, separate step.
func (s *Session[F]) Edit(index int, mutate func(*F)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if index < 0 || index >= len(s.lines) {
		return ErrRowOutOfRange
	}

	row := s.lines[index]
	mutate(&row.Fields)
	s.lines[index] = row
	s.dirty[row.ID.Key()] = struct{}{}
	return nil
}

// AddRow appends a row that exists only in the buffer, identified by a fresh
// local token. The row is tracked as both new and dirty until a create call
// succeeds. Returns the new row's position.
func (s *Session[F]) AddRow(defaults F) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSessionClosed
	}

	row := entities.Line[F]{
		ID:     entities.NewLocalID(),
		Fields: defaults,
	}
	s.lines = append(s.lines, row)
	key := row.ID.Key()
	s.fresh[key] = struct{}{}
	s.dirty[key] = struct{}{}
	return len(s.lines) - 1, nil
}

// IsDirty reports whether the row at index has unsaved field changes.
func (s *Session[F]) IsDirty(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return false
	}
	_, ok := s.dirty[s.lines[index].ID.Key()]
	return ok
}

// IsNew reports whether the row at index has no server record yet.
func (s *Session[F]) IsNew(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return false
	}
	_, ok := s.fresh[s.lines[index].ID.Key()]
	return ok
}

// DirtyIndices returns the current positions of rows with unsaved changes.
// Positions are derived from identities on demand, so they are correct in
// any ordering of the buffer.
func (s *Session[F]) DirtyIndices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indicesOf(s.dirty)
}

// NewIndices returns the current positions of rows with no server record.
func (s *Session[F]) NewIndices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indicesOf(s.fresh)
}

func (s *Session[F]) indicesOf(set map[string]struct{}) []int {
	var out []int
	for i := range s.lines {
		if _, ok := set[s.lines[i].ID.Key()]; ok {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// Close marks the session as torn down. In-flight persistence completions
// observe the flag and discard their results instead of mutating state that
// no longer backs any view.
func (s *Session[F]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Session[F]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// indexByKey locates a row by its tracking key. Returns -1 when the row has
// left the buffer.
func (s *Session[F]) indexByKey(key string) int {
	for i := range s.lines {
		if s.lines[i].ID.Key() == key {
			return i
		}
	}
	return -1
}

// indexByID locates a row by identity. Returns -1 when absent.
func (s *Session[F]) indexByID(id entities.LineID) int {
	for i := range s.lines {
		if s.lines[i].ID.Same(id) {
			return i
		}
	}
	return -1
}

func (s *Session[F]) publish(event events.Event) {
	if s.cfg.Events == nil {
		return
	}
	if err := s.cfg.Events.AppendEvent(event.StreamID(), event); err != nil {
		s.cfg.Logger.Warn("failed to append edit event",
			"kind", s.kind, "event", event.Type(), "error", err)
	}
}

func (s *Session[F]) requestRefresh() {
	if s.cfg.OnRefresh != nil {
		s.cfg.OnRefresh()
	}
}
