package reorder

import "testing"

func TestStorePublishNotifiesChangedOnly(t *testing.T) {
	table, _ := Build(entries("A", "B", "C"))
	s := NewStore(table)

	got := map[string][]int{}
	for _, id := range []string{"A", "B", "C"} {
		id := id
		s.Subscribe(id, func(i int) { got[id] = append(got[id], i) })
	}

	next, _ := table.Swap("A", "B")
	s.Publish(next)

	if len(got["A"]) != 1 || got["A"][0] != 1 {
		t.Errorf("A notifications = %v, want [1]", got["A"])
	}
	if len(got["B"]) != 1 || got["B"][0] != 0 {
		t.Errorf("B notifications = %v, want [0]", got["B"])
	}
	if len(got["C"]) != 0 {
		t.Errorf("C notified without change: %v", got["C"])
	}
	if s.Version() != 0 {
		t.Errorf("Publish bumped version to %d", s.Version())
	}
}

func TestStoreReplaceNotifiesAllAndBumpsVersion(t *testing.T) {
	table, _ := Build(entries("A", "B", "C"))
	s := NewStore(table)

	calls := 0
	s.Subscribe("A", func(int) { calls++ })
	cancel := s.Subscribe("C", func(int) { calls++ })

	rebuilt, _ := Build(entries("A", "C"))
	s.Replace(rebuilt)
	if calls != 2 {
		t.Errorf("Replace notified %d listeners, want 2", calls)
	}
	if s.Version() != 1 {
		t.Errorf("Version() = %d, want 1", s.Version())
	}

	cancel()
	s.Replace(rebuilt)
	if calls != 3 {
		t.Errorf("cancelled listener still notified (calls=%d)", calls)
	}
}

func TestStoreListenerSeesWholeTable(t *testing.T) {
	table, _ := Build(entries("A", "B", "C", "D"))
	s := NewStore(table)

	s.Subscribe("A", func(int) {
		if err := s.Load().Validate(); err != nil {
			t.Errorf("listener observed partial table: %v", err)
		}
	})
	next, _ := table.Swap("A", "D")
	s.Publish(next)
}
