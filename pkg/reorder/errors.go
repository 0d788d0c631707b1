package reorder

import "errors"

var (
	// ErrInvariantViolation is returned when a position table would not be dense
	// and unique. It indicates a bug in whoever supplied the rows.
	ErrInvariantViolation = errors.New("position table invariant violated")

	// ErrNotFound is returned when an identifier is not in the table
	ErrNotFound = errors.New("identifier not found")

	// ErrSessionActive is returned when a drag is started while another is in flight
	ErrSessionActive = errors.New("drag session already active")

	// ErrNoSession is returned for drag events without an active session
	ErrNoSession = errors.New("no active drag session")

	// ErrStaleSession is returned for events that belong to an aborted session
	ErrStaleSession = errors.New("drag session is stale")
)
