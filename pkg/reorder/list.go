// Package reorder implements the engine behind a drag-to-reorder list: a dense
// position table published by copy-on-write, per-row controllers that settle
// with an eased animation, a drag coordinator that converts pointer movement
// into pairwise swaps, and a scroll synchronizer that auto-scrolls at the
// viewport edges.
//
// All methods are meant to be called from one event loop (for example a
// bubbletea Update function). Nothing here blocks.
package reorder

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// ReorderFunc receives the full position table after a completed drag
type ReorderFunc func(mapping map[string]int)

// Option configures a List
type Option func(*List)

// WithLogger sets the logger (default slog.Default())
func WithLogger(log *slog.Logger) Option {
	return func(l *List) { l.log = log }
}

// WithClock sets the time source used for long-press and animations
func WithClock(now func() time.Time) Option {
	return func(l *List) { l.now = now }
}

// WithReorderHandler sets the callback invoked once per completed drag
func WithReorderHandler(fn ReorderFunc) Option {
	return func(l *List) { l.onReorder = fn }
}

// WithScrollSurface sets the scroll-control primitive
func WithScrollSurface(fn ScrollSurface) Option {
	return func(l *List) { l.surface = fn }
}

// WithViewportHeight sets the initial viewport height
func WithViewportHeight(h float64) Option {
	return func(l *List) { l.viewport = h }
}

// List owns the row registry and the position table for one list instance.
type List struct {
	cfg       Config
	store     *Store
	rows      map[string]*Row
	version   uint64 // registry version, bumped on membership change
	scroll    *ScrollSync
	coord     *Coordinator
	onReorder ReorderFunc
	surface   ScrollSurface
	viewport  float64
	log       *slog.Logger
	now       func() time.Time
}

// New builds a list from entries. Entries must be dense and unique.
func New(cfg Config, entries []Entry, opts ...Option) (*List, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table, err := Build(entries)
	if err != nil {
		return nil, err
	}

	l := &List{
		cfg:  cfg,
		rows: make(map[string]*Row, len(entries)),
		log:  slog.Default(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.store = NewStore(table)
	l.scroll = NewScrollSync(l.viewport, table.Len(), cfg.RowHeight, l.surface)
	l.scroll.SetEdgeInset(cfg.EdgeInset)
	l.coord = NewCoordinator(l.store, l.scroll, cfg.RowHeight, l.log)
	for _, e := range table.Entries() {
		l.addRow(e.ID, e.Index)
	}
	l.version = 1
	return l, nil
}

func (l *List) addRow(id string, index int) {
	r := newRow(id, index, l.cfg)
	r.unsubscribe = l.store.Subscribe(id, func(i int) {
		r.indexChanged(i, l.now())
	})
	l.rows[id] = r
}

// SetRows rebuilds the position table after a membership change. An
// in-flight drag is aborted and is not reported.
func (l *List) SetRows(entries []Entry) error {
	table, err := Build(entries)
	if err != nil {
		return err
	}

	if s, ok := l.coord.Session(); ok {
		l.log.Info("drag: aborted by row change", "session", s.ID, "row", s.RowID)
		l.coord.Abort()
	}

	now := l.now()
	for id, r := range l.rows {
		if !table.Has(id) {
			r.unsubscribe()
			delete(l.rows, id)
			continue
		}
		// Pointer control ends; the rebuild below retargets the row.
		if r.Raised() || r.pressed {
			r.pressed = false
			r.state = RowSettled
			r.step(now)
		}
	}

	l.version++
	l.store.Replace(table)
	for _, e := range table.Entries() {
		if _, ok := l.rows[e.ID]; !ok {
			l.addRow(e.ID, e.Index)
		}
	}
	l.scroll.SetRowCount(table.Len())
	l.log.Debug("rows: rebuilt", "rows", table.Len(), "version", l.version)
	return nil
}

// Version returns the registry version
func (l *List) Version() uint64 { return l.version }

// Config returns the engine settings
func (l *List) Config() Config { return l.cfg }

// Table returns the current position table
func (l *List) Table() Table { return l.store.Load() }

// Subscribe registers fn for index changes of id. Only the list writes
// the table; subscribers observe it.
func (l *List) Subscribe(id string, fn IndexListener) (cancel func()) {
	return l.store.Subscribe(id, fn)
}

// Scroll returns the scroll synchronizer
func (l *List) Scroll() *ScrollSync { return l.scroll }

// Len returns the number of rows
func (l *List) Len() int { return len(l.rows) }

// Row returns the controller for id
func (l *List) Row(id string) (*Row, bool) {
	r, ok := l.rows[id]
	return r, ok
}

// Rows returns the controllers in paint order: by offset, raised rows last.
func (l *List) Rows() []*Row {
	out := make([]*Row, 0, len(l.rows))
	for _, r := range l.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Raised() != out[j].Raised() {
			return !out[i].Raised()
		}
		if out[i].offset != out[j].offset {
			return out[i].offset < out[j].offset
		}
		return out[i].id < out[j].id
	})
	return out
}

// Dragging returns the identifier of the dragged row
func (l *List) Dragging() (string, bool) {
	if s, ok := l.coord.Session(); ok {
		return s.RowID, true
	}
	return "", false
}

// Session returns the active drag session
func (l *List) Session() (*Session, bool) {
	return l.coord.Session()
}

// Busy reports whether any row is pressed, armed or dragging
func (l *List) Busy() bool {
	for _, r := range l.rows {
		if r.pressed || r.Raised() {
			return true
		}
	}
	return false
}

// Press records a pointer down on id and starts the long-press timer. It is
// ignored while another row is held or dragged.
func (l *List) Press(id string) bool {
	r, ok := l.rows[id]
	if !ok || l.Busy() {
		return false
	}
	r.press(l.now())
	return true
}

// PointerMoved reports movement before the row has armed
func (l *List) PointerMoved(id string, dist float64) {
	if r, ok := l.rows[id]; ok {
		r.pointerMoved(dist)
	}
}

// LongPress arms id if it has been held long enough. It returns whether the
// row is armed.
func (l *List) LongPress(id string) bool {
	r, ok := l.rows[id]
	if !ok {
		return false
	}
	if r.arm(l.now()) {
		l.log.Debug("row: armed", "row", id)
		return true
	}
	return false
}

// PanStart activates dragging for an armed row. A row that is not armed
// declines so the surrounding scroll keeps the gesture.
func (l *List) PanStart(id string) bool {
	r, ok := l.rows[id]
	if !ok || !r.activate() {
		return false
	}
	if _, err := l.coord.Begin(id, r.offset); err != nil {
		l.log.Debug("drag: begin refused", "row", id, "err", err)
		r.state = RowArmed
		return false
	}
	return true
}

// PanUpdate moves the dragged row by translation since PanStart and returns
// its live offset.
func (l *List) PanUpdate(id string, translation float64) (float64, error) {
	s, ok := l.coord.Session()
	if !ok {
		l.dropPointer(id)
		return 0, ErrStaleSession
	}
	if s.RowID != id {
		return 0, fmt.Errorf("%w: update for %q during drag of %q", ErrSessionActive, id, s.RowID)
	}
	live, err := l.coord.Update(translation)
	if err != nil {
		if errors.Is(err, ErrStaleSession) {
			l.dropPointer(id)
		}
		return 0, err
	}
	if r, ok := l.rows[id]; ok {
		r.drag(live)
	}
	return live, nil
}

// PanEnd completes the drag: the row settles on its index and the full table
// is reported to the reorder handler.
func (l *List) PanEnd(id string) error {
	s, ok := l.coord.Session()
	if !ok {
		l.dropPointer(id)
		return ErrStaleSession
	}
	if s.RowID != id {
		return fmt.Errorf("%w: end for %q during drag of %q", ErrSessionActive, id, s.RowID)
	}
	_, table, err := l.coord.End()
	if err != nil {
		if errors.Is(err, ErrStaleSession) {
			l.dropPointer(id)
		}
		return err
	}

	index, err := table.IndexOf(id)
	if err != nil {
		return err
	}
	if r, ok := l.rows[id]; ok {
		r.settle(index, l.now())
	}
	l.log.Info("drag: complete", "session", s.ID, "row", id, "index", index, "swaps", s.Swaps)
	if l.onReorder != nil {
		l.onReorder(table.Mapping())
	}
	return nil
}

// dropPointer ends pointer control of a row whose session went stale and
// settles it on its current index.
func (l *List) dropPointer(id string) {
	r, ok := l.rows[id]
	if !ok || (!r.Raised() && !r.pressed) {
		return
	}
	index, err := l.store.Load().IndexOf(id)
	if err != nil {
		return
	}
	l.log.Debug("drag: row dropped after stale session", "row", id, "index", index)
	r.settle(index, l.now())
}

// Release handles a pointer up that never became a drag
func (l *List) Release(id string) {
	if r, ok := l.rows[id]; ok && !r.Dragging() {
		r.release(l.now())
	}
}

// Step advances every animation and reports whether any row is still animating.
func (l *List) Step() bool {
	now := l.now()
	animating := false
	for _, r := range l.rows {
		if r.step(now) {
			animating = true
		}
	}
	return animating
}

// Animating reports whether any row is mid-animation
func (l *List) Animating() bool {
	for _, r := range l.rows {
		if r.state == RowAnimating {
			return true
		}
	}
	return false
}

// RowAt returns the topmost row covering the content offset y
func (l *List) RowAt(y float64) (*Row, bool) {
	rows := l.Rows()
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		if y >= r.offset && y < r.offset+l.cfg.RowHeight {
			return r, true
		}
	}
	return nil, false
}

// IsStale reports whether err means a drag event arrived for an aborted session
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleSession)
}
