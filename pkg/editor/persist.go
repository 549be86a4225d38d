package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/infrastructure/events"
)

// SaveRow validates the row at index and persists its current buffer state:
// a create call for a row the server has never seen, an update otherwise.
//
// On success the row's tracking state is cleared (both sets after a create,
// the dirty set after an update), the server-computed amounts are adopted,
// and an assignment refresh is requested since the aggregate figures are only
// authoritative after a round trip. On any failure the row keeps its
// dirty/new state so the user can retry; there is no automatic retry.
func (s *Session[F]) SaveRow(ctx context.Context, index int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return ErrRowOutOfRange
	}
	row := s.lines[index]
	key := row.ID.Key()
	_, isNew := s.fresh[key]
	owner := s.owner
	s.mu.Unlock()

	// Fail fast before any network call.
	if row.Fields.Reference() == 0 {
		return fmt.Errorf("row %d: %w", index, ErrMissingReference)
	}

	var saved entities.Line[F]
	var err error
	if isNew {
		saved, err = await(s.cfg.SaveTimeout, func() (entities.Line[F], error) {
			return s.repo.Create(ctx, owner, row.Fields)
		})
	} else {
		saved, err = await(s.cfg.SaveTimeout, func() (entities.Line[F], error) {
			return s.repo.Update(ctx, row.ID.ServerID, owner, row.Fields)
		})
	}
	if err != nil {
		s.cfg.Logger.Error("row save failed",
			"kind", s.kind, "shock_id", owner.ShockID, "new", isNew, "error", err)
		return fmt.Errorf("saving %s row: %w", s.kind, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}

	// The buffer may have changed while the call was in flight. Reconcile by
	// identity; if the row left the buffer meanwhile there is nothing to
	// apply the result to.
	at := s.indexByKey(key)
	if at < 0 {
		s.mu.Unlock()
		s.cfg.Logger.Warn("saved row no longer in buffer",
			"kind", s.kind, "shock_id", owner.ShockID)
		return nil
	}

	current := s.lines[at]
	if isNew {
		// Promote to the server identity; the local token stays so the
		// tracking key is stable.
		current.ID.ServerID = saved.ID.ServerID
	}
	current.Amounts = saved.Amounts
	s.lines[at] = current

	delete(s.dirty, key)
	delete(s.fresh, key)
	s.mu.Unlock()

	if isNew {
		s.publish(events.NewRowCreatedEvent(owner.ShockID, current.ID.ServerID, s.kind))
	} else {
		s.publish(events.NewRowUpdatedEvent(owner.ShockID, current.ID.ServerID, s.kind))
	}
	s.publish(events.NewAssignmentRefreshRequestedEvent(owner.AssignmentID))
	s.requestRefresh()
	return nil
}

// RemoveRow deletes the row at index. A row the server has never seen is
// dropped from the buffer without any network call. A persisted row is only
// removed after the delete request succeeds; on failure the buffer is left
// untouched so the user can retry.
func (s *Session[F]) RemoveRow(ctx context.Context, index int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return ErrRowOutOfRange
	}
	row := s.lines[index]
	key := row.ID.Key()
	owner := s.owner

	if _, isNew := s.fresh[key]; isNew {
		// Never existed server-side; local bookkeeping only.
		s.lines = append(s.lines[:index], s.lines[index+1:]...)
		delete(s.dirty, key)
		delete(s.fresh, key)
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	_, err := await(s.cfg.SaveTimeout, func() (struct{}, error) {
		return struct{}{}, s.repo.Delete(ctx, row.ID.ServerID)
	})
	if err != nil {
		s.cfg.Logger.Error("row delete failed",
			"kind", s.kind, "shock_id", owner.ShockID, "server_id", row.ID.ServerID, "error", err)
		return fmt.Errorf("deleting %s row: %w", s.kind, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if at := s.indexByKey(key); at >= 0 {
		s.lines = append(s.lines[:at], s.lines[at+1:]...)
	}
	delete(s.dirty, key)
	s.mu.Unlock()

	s.publish(events.NewRowDeletedEvent(owner.ShockID, row.ID.ServerID, s.kind))
	s.publish(events.NewAssignmentRefreshRequestedEvent(owner.AssignmentID))
	s.requestRefresh()
	return nil
}

// await races fn against the bounded wait. On timeout the transport call is
// not aborted; a late result is simply discarded, matching the retry model
// where the row stays dirty and the user decides what happens next.
func await[T any](timeout time.Duration, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := fn()
		done <- outcome{value: v, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.value, out.err
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}
