package editor

import "errors"

var (
	// ErrMissingReference blocks persistence of a row whose catalog reference
	// has not been chosen. Caught before any network call.
	ErrMissingReference = errors.New("line item has no catalog reference")

	// ErrRowOutOfRange reports a buffer index outside the current bounds.
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrUnknownRow reports a row identity that is not in the buffer.
	ErrUnknownRow = errors.New("row identity not in buffer")

	// ErrNoPersistedRows rejects an order save when the server has no record
	// of any row yet.
	ErrNoPersistedRows = errors.New("no persisted rows to reorder")

	// ErrTimeout marks a persistence call that exceeded the bounded wait. It
	// is distinct from a generic request failure so the surface can word the
	// two differently. The underlying transport call is not aborted.
	ErrTimeout = errors.New("persistence call timed out")

	// ErrSessionClosed reports an operation on a torn-down session.
	ErrSessionClosed = errors.New("edit session closed")
)
