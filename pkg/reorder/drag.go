package reorder

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// Session is the state of one press-drag-release cycle
type Session struct {
	ID          uuid.UUID
	RowID       string
	Anchor      float64 // row offset when dragging started, shifted by auto-scroll
	Translation float64 // pointer translation since the drag started
	Version     uint64  // store membership version at start
	Swaps       int
}

// Live returns the dragged row's offset for the current anchor and translation
func (s *Session) Live() float64 {
	return s.Anchor + s.Translation
}

// Coordinator turns pointer translation of the dragged row into position swaps
// and auto-scroll. It is the only writer to the store while a session is open.
type Coordinator struct {
	store     *Store
	scroll    *ScrollSync
	rowHeight float64
	session   *Session
	log       *slog.Logger
}

// NewCoordinator creates a coordinator writing to store
func NewCoordinator(store *Store, scroll *ScrollSync, rowHeight float64, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{store: store, scroll: scroll, rowHeight: rowHeight, log: log}
}

// Session returns the active session, if any
func (c *Coordinator) Session() (*Session, bool) {
	return c.session, c.session != nil
}

// Begin opens a session for rowID anchored at the row's current offset
func (c *Coordinator) Begin(rowID string, anchor float64) (*Session, error) {
	if c.session != nil {
		return nil, fmt.Errorf("%w: %q is being dragged", ErrSessionActive, c.session.RowID)
	}
	if !c.store.Load().Has(rowID) {
		return nil, fmt.Errorf("begin drag: %w: %q", ErrNotFound, rowID)
	}
	c.session = &Session{
		ID:      uuid.New(),
		RowID:   rowID,
		Anchor:  anchor,
		Version: c.store.Version(),
	}
	c.log.Debug("drag: begin", "session", c.session.ID, "row", rowID, "anchor", anchor)
	return c.session, nil
}

// Update applies a pointer update and returns the row's new live offset.
// Repeating an update with the same translation is safe: the swap step is
// idempotent and auto-scroll keeps the live offset continuous.
func (c *Coordinator) Update(translation float64) (float64, error) {
	s := c.session
	if s == nil {
		return 0, ErrNoSession
	}
	if s.Version != c.store.Version() {
		c.Abort()
		return 0, ErrStaleSession
	}

	s.Translation = translation
	live := s.Live()
	c.swapTowards(s, live)

	if delta := c.scroll.AutoScroll(live); delta != 0 {
		s.Anchor += delta
		live = s.Live()
		c.log.Debug("drag: auto-scroll", "session", s.ID, "delta", delta, "scroll", c.scroll.Offset())
	}
	return live, nil
}

// swapTowards swaps the dragged row with whichever row occupies the index under live
func (c *Coordinator) swapTowards(s *Session, live float64) {
	table := c.store.Load()
	cur, err := table.IndexOf(s.RowID)
	if err != nil {
		return
	}
	candidate := int(math.Floor(live / c.rowHeight))
	if candidate == cur {
		return
	}
	other, ok := table.IdentifierAt(candidate)
	if !ok {
		// Out of range or a transient gap; try again on a later tick.
		c.log.Debug("drag: no occupant", "session", s.ID, "index", candidate)
		return
	}
	next, err := table.Swap(s.RowID, other)
	if err != nil {
		c.log.Debug("drag: swap", "session", s.ID, "err", err)
		return
	}
	c.store.Publish(next)
	s.Swaps++
	c.log.Debug("drag: swap", "session", s.ID, "row", s.RowID, "with", other, "from", cur, "to", candidate)
}

// End closes the session and returns the final table
func (c *Coordinator) End() (*Session, Table, error) {
	s := c.session
	if s == nil {
		return nil, Table{}, ErrNoSession
	}
	c.session = nil
	if s.Version != c.store.Version() {
		c.log.Debug("drag: end of stale session discarded", "session", s.ID)
		return s, Table{}, ErrStaleSession
	}
	c.log.Debug("drag: end", "session", s.ID, "row", s.RowID, "swaps", s.Swaps)
	return s, c.store.Load(), nil
}

// Abort drops the active session without reporting it
func (c *Coordinator) Abort() {
	if c.session == nil {
		return
	}
	c.log.Debug("drag: aborted", "session", c.session.ID, "row", c.session.RowID)
	c.session = nil
}
