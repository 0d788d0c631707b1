// Package items holds the canonical item records behind the reorderable list.
// It owns checked state, membership and order, and accepts the final position
// table reported after each drag.
package items

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/marcus/sortable/internal/models"
	"github.com/marcus/sortable/pkg/reorder"
)

// ErrNotFound is returned for unknown item IDs
var ErrNotFound = errors.New("item not found")

// ErrMismatch is returned when a reorder mapping does not cover exactly the
// current items
var ErrMismatch = errors.New("reorder mapping does not match items")

// Store is an in-memory item list
type Store struct {
	items []models.Item
}

// New creates a store; orders are normalized to 0..N-1.
func New(items []models.Item) *Store {
	return &Store{items: Normalize(items)}
}

// Default returns the stock nine-item list
func Default() []models.Item {
	out := make([]models.Item, 9)
	for i := range out {
		out[i] = models.Item{
			ID:    fmt.Sprintf("%d", i+1),
			Title: fmt.Sprintf("Item %d", i+1),
			Order: i,
		}
	}
	return out
}

// Normalize sorts items by order (then ID) and reassigns dense orders.
func Normalize(items []models.Item) []models.Item {
	out := append([]models.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	for i := range out {
		out[i].Order = i
	}
	return out
}

// Items returns a copy of the items sorted by order
func (s *Store) Items() []models.Item {
	out := append([]models.Item(nil), s.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Len returns the number of items
func (s *Store) Len() int { return len(s.items) }

// Get returns the item with id
func (s *Store) Get(id string) (models.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.Item{}, false
}

// Entries returns the (id, order) pairs for the reorder engine
func (s *Store) Entries() []reorder.Entry {
	out := make([]reorder.Entry, len(s.items))
	for i, it := range s.items {
		out[i] = reorder.Entry{ID: it.ID, Index: it.Order}
	}
	return out
}

// Toggle flips the checked state of id
func (s *Store) Toggle(id string) (models.Item, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Checked = !s.items[i].Checked
			return s.items[i], nil
		}
	}
	return models.Item{}, fmt.Errorf("toggle %q: %w", id, ErrNotFound)
}

// Remove deletes id. Items ordered after it move up by one; items before it
// keep their order. Orders must already be contiguous.
func (s *Store) Remove(id string) (models.Item, error) {
	idx := -1
	for i, it := range s.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Item{}, fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}

	removed := s.items[idx]
	next := make([]models.Item, 0, len(s.items)-1)
	for i, it := range s.items {
		if i == idx {
			continue
		}
		if it.Order > removed.Order {
			it.Order--
		}
		next = append(next, it)
	}
	s.items = next
	return removed, nil
}

// Add appends a new unchecked item at the end of the list
func (s *Store) Add(title string) (models.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Item{}, errors.New("title is required")
	}
	it := models.Item{
		ID:    uuid.NewString()[:8],
		Title: title,
		Order: len(s.items),
	}
	s.items = append(s.items, it)
	return it, nil
}

// Reorder applies a complete id -> order mapping
func (s *Store) Reorder(mapping map[string]int) error {
	if len(mapping) != len(s.items) {
		return fmt.Errorf("%w: %d entries for %d items", ErrMismatch, len(mapping), len(s.items))
	}
	next := append([]models.Item(nil), s.items...)
	for i := range next {
		order, ok := mapping[next[i].ID]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrMismatch, next[i].ID)
		}
		next[i].Order = order
	}
	if _, err := reorder.Build(entriesOf(next)); err != nil {
		return fmt.Errorf("%w: %v", ErrMismatch, err)
	}
	s.items = next
	return nil
}

// Replace swaps in a freshly loaded item list
func (s *Store) Replace(items []models.Item) {
	s.items = Normalize(items)
}

func entriesOf(items []models.Item) []reorder.Entry {
	out := make([]reorder.Entry, len(items))
	for i, it := range items {
		out[i] = reorder.Entry{ID: it.ID, Index: it.Order}
	}
	return out
}
