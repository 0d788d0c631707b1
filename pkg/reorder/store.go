package reorder

import (
	"sync"
	"sync/atomic"
)

// IndexListener is notified with the new order index of the identifier it
// subscribed for.
type IndexListener func(index int)

// Store publishes position tables. Readers always observe a whole Table; a
// mutation is a single pointer replacement followed by notification of the
// identifiers whose index changed.
type Store struct {
	cur     atomic.Pointer[Table]
	version atomic.Uint64

	mu   sync.Mutex
	subs map[string]map[uint64]IndexListener
	next uint64
}

// NewStore creates a store holding t
func NewStore(t Table) *Store {
	s := &Store{subs: make(map[string]map[uint64]IndexListener)}
	s.cur.Store(&t)
	return s
}

// Load returns the current table
func (s *Store) Load() Table {
	return *s.cur.Load()
}

// Version returns the membership version. It changes on Replace only.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// Subscribe registers fn for index changes of id. The returned func cancels it.
func (s *Store) Subscribe(id string, fn IndexListener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	key := s.next
	if s.subs[id] == nil {
		s.subs[id] = make(map[uint64]IndexListener)
	}
	s.subs[id][key] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[id], key)
		if len(s.subs[id]) == 0 {
			delete(s.subs, id)
		}
	}
}

// Publish swaps in next and notifies listeners whose index changed. The row
// set must be the same as the current table's; use Replace for rebuilds.
func (s *Store) Publish(next Table) {
	prev := s.cur.Swap(&next)
	s.notify(*prev, next, false)
}

// Replace installs a rebuilt table after a membership change. Every
// subscriber still present is notified so it can retarget.
func (s *Store) Replace(next Table) {
	prev := s.cur.Swap(&next)
	s.version.Add(1)
	s.notify(*prev, next, true)
}

func (s *Store) notify(prev, next Table, all bool) {
	type call struct {
		fn    IndexListener
		index int
	}
	var calls []call

	s.mu.Lock()
	for id, listeners := range s.subs {
		ni, err := next.IndexOf(id)
		if err != nil {
			continue
		}
		if !all {
			if pi, err := prev.IndexOf(id); err == nil && pi == ni {
				continue
			}
		}
		for _, fn := range listeners {
			calls = append(calls, call{fn: fn, index: ni})
		}
	}
	s.mu.Unlock()

	// Listeners run outside the lock so they may read the store.
	for _, c := range calls {
		c.fn(c.index)
	}
}
