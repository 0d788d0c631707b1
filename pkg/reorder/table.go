package reorder

import (
	"fmt"
	"sort"
)

// Entry pairs a row identifier with its order index
type Entry struct {
	ID    string `json:"id" yaml:"id"`
	Index int    `json:"order" yaml:"order"`
}

// Table is an immutable mapping from row identifier to a dense order index.
// Every mutation returns a new Table; a Table value is never edited after
// Build returns it, so it can be shared freely between readers.
type Table struct {
	index map[string]int
	ids   []string // ids[i] occupies order index i
}

// Build creates a table from entries. The indices must be exactly 0..N-1 with
// no duplicate identifiers.
func Build(entries []Entry) (Table, error) {
	t := Table{
		index: make(map[string]int, len(entries)),
		ids:   make([]string, len(entries)),
	}
	filled := make([]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return Table{}, fmt.Errorf("%w: empty identifier", ErrInvariantViolation)
		}
		if _, dup := t.index[e.ID]; dup {
			return Table{}, fmt.Errorf("%w: duplicate identifier %q", ErrInvariantViolation, e.ID)
		}
		if e.Index < 0 || e.Index >= len(entries) {
			return Table{}, fmt.Errorf("%w: index %d out of range for %d rows", ErrInvariantViolation, e.Index, len(entries))
		}
		if filled[e.Index] {
			return Table{}, fmt.Errorf("%w: index %d assigned twice", ErrInvariantViolation, e.Index)
		}
		filled[e.Index] = true
		t.index[e.ID] = e.Index
		t.ids[e.Index] = e.ID
	}
	return t, nil
}

// Len returns the number of rows
func (t Table) Len() int {
	return len(t.ids)
}

// IndexOf returns the order index of id
func (t Table) IndexOf(id string) (int, error) {
	i, ok := t.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return i, nil
}

// Has reports whether id is in the table
func (t Table) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// IdentifierAt returns the identifier occupying index. The boolean is false when
// nothing occupies it; callers treat that as a transient miss.
func (t Table) IdentifierAt(index int) (string, bool) {
	if index < 0 || index >= len(t.ids) {
		return "", false
	}
	id := t.ids[index]
	return id, id != ""
}

// Swap returns a copy of the table with the indices of a and b exchanged.
func (t Table) Swap(a, b string) (Table, error) {
	ia, err := t.IndexOf(a)
	if err != nil {
		return t, err
	}
	ib, err := t.IndexOf(b)
	if err != nil {
		return t, err
	}
	if a == b {
		return t, nil
	}

	next := t.clone()
	next.index[a], next.index[b] = ib, ia
	next.ids[ia], next.ids[ib] = b, a
	return next, nil
}

// Mapping returns a copy of the identifier to index mapping
func (t Table) Mapping() map[string]int {
	m := make(map[string]int, len(t.index))
	for id, i := range t.index {
		m[id] = i
	}
	return m
}

// Order returns identifiers sorted by index
func (t Table) Order() []string {
	return append([]string(nil), t.ids...)
}

// Entries returns the table as entries sorted by index
func (t Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.ids))
	for i, id := range t.ids {
		out = append(out, Entry{ID: id, Index: i})
	}
	return out
}

// Equal reports whether both tables map the same identifiers to the same indices
func (t Table) Equal(other Table) bool {
	if len(t.ids) != len(other.ids) {
		return false
	}
	for i := range t.ids {
		if t.ids[i] != other.ids[i] {
			return false
		}
	}
	return true
}

// Validate re-checks the density invariant. Tables produced by Build and Swap
// always pass; it exists for assertions in callers and tests.
func (t Table) Validate() error {
	if len(t.index) != len(t.ids) {
		return fmt.Errorf("%w: %d identifiers for %d slots", ErrInvariantViolation, len(t.index), len(t.ids))
	}
	for i, id := range t.ids {
		if got, ok := t.index[id]; !ok || got != i {
			return fmt.Errorf("%w: slot %d holds %q", ErrInvariantViolation, i, id)
		}
	}
	return nil
}

// String renders the table as {id:index ...} in index order
func (t Table) String() string {
	parts := make([]string, len(t.ids))
	for i, id := range t.ids {
		parts[i] = fmt.Sprintf("%s:%d", id, i)
	}
	return fmt.Sprint(parts)
}

func (t Table) clone() Table {
	next := Table{
		index: make(map[string]int, len(t.index)),
		ids:   append([]string(nil), t.ids...),
	}
	for id, i := range t.index {
		next.index[id] = i
	}
	return next
}

// EntriesFromMapping converts a mapping into entries sorted by index then id
func EntriesFromMapping(m map[string]int) []Entry {
	out := make([]Entry, 0, len(m))
	for id, i := range m {
		out = append(out, Entry{ID: id, Index: i})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		return out[i].ID < out[j].ID
	})
	return out
}
