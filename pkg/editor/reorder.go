package editor

import (
	"context"
	"fmt"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/infrastructure/events"
)

// Move resequences the buffer after a drag: the dragged row leaves its
// current position and is reinserted at the drop target's position, shifting
// the rows between them by one slot. Positions are resolved by identity at
// the moment of the drop, never from a stale index.
//
// Because tracking is identity-keyed, no bookkeeping needs remapping; the
// dirty/new sets follow their rows wherever they land. A successful move
// flags the ordering as pending until SaveOrder persists it.
func (s *Session[F]) Move(dragged, target entities.LineID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	src := s.indexByID(dragged)
	if src < 0 {
		return fmt.Errorf("dragged row: %w", ErrUnknownRow)
	}
	dst := s.indexByID(target)
	if dst < 0 {
		return fmt.Errorf("target row: %w", ErrUnknownRow)
	}
	if src == dst {
		return nil
	}

	s.moveLocked(src, dst)
	s.orderPending = true
	return nil
}

// MoveIndex resequences by buffer positions, used for keyboard reordering
// where the caller works on the rendered order directly.
func (s *Session[F]) MoveIndex(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if from < 0 || from >= len(s.lines) || to < 0 || to >= len(s.lines) {
		return ErrRowOutOfRange
	}
	if from == to {
		return nil
	}

	s.moveLocked(from, to)
	s.orderPending = true
	return nil
}

// moveLocked performs the single-element move. Callers hold the lock.
func (s *Session[F]) moveLocked(src, dst int) {
	row := s.lines[src]
	if src < dst {
		copy(s.lines[src:dst], s.lines[src+1:dst+1])
	} else {
		copy(s.lines[dst+1:src+1], s.lines[dst:src])
	}
	s.lines[dst] = row
}

// OrderPending reports whether a reorder has happened since the ordering was
// last persisted (or the buffer initialized).
func (s *Session[F]) OrderPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderPending
}

// PersistedOrder returns the server ids of the persisted rows in their
// current buffer order. Rows the server has no record of are excluded.
func (s *Session[F]) PersistedOrder() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistedOrderLocked()
}

func (s *Session[F]) persistedOrderLocked() []int64 {
	var ids []int64
	for i := range s.lines {
		if s.lines[i].ID.Persisted() {
			ids = append(ids, s.lines[i].ID.ServerID)
		}
	}
	return ids
}

// SaveOrder persists the manual ordering. Only persisted rows are sent; an
// unsaved row has no server identity to order. Saving an ordering with no
// persisted rows at all is an error rather than an empty instruction.
func (s *Session[F]) SaveOrder(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	ids := s.persistedOrderLocked()
	owner := s.owner
	s.mu.Unlock()

	if len(ids) == 0 {
		return ErrNoPersistedRows
	}

	_, err := await(s.cfg.SaveTimeout, func() (struct{}, error) {
		return struct{}{}, s.repo.Reorder(ctx, owner.ShockID, ids)
	})
	if err != nil {
		s.cfg.Logger.Error("order save failed",
			"kind", s.kind, "shock_id", owner.ShockID, "error", err)
		return fmt.Errorf("saving %s order: %w", s.kind, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.orderPending = false
	s.mu.Unlock()

	s.publish(events.NewOrderSavedEvent(owner.ShockID, s.kind, ids))
	s.publish(events.NewAssignmentRefreshRequestedEvent(owner.AssignmentID))
	s.requestRefresh()
	return nil
}
