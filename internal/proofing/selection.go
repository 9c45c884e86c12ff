package proofing

// SelectionSet is the set of photo ids a visitor has marked during a session.
// It is not safe for concurrent use.
type SelectionSet struct {
	order []string
	index map[string]int
}

func NewSelectionSet(ids ...string) *SelectionSet {
	s := &SelectionSet{index: make(map[string]int)}
	for _, id := range ids {
		if !s.Has(id) {
			s.add(id)
		}
	}
	return s
}

// Toggle adds id when absent and removes it when present. It reports whether
// id is selected afterwards.
func (s *SelectionSet) Toggle(id string) bool {
	if s.Has(id) {
		s.remove(id)
		return false
	}
	s.add(id)
	return true
}

func (s *SelectionSet) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *SelectionSet) Len() int {
	return len(s.order)
}

// IDs returns the selected ids in the order they were first selected.
func (s *SelectionSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *SelectionSet) add(id string) {
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
}

func (s *SelectionSet) remove(id string) {
	i := s.index[id]
	delete(s.index, id)
	s.order = append(s.order[:i], s.order[i+1:]...)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
}

// Group is one client's share of a flat selection list.
type Group[T any] struct {
	Email string
	Items []T
}

// GroupByEmail groups items by client email in a single pass. Groups appear
// in order of each email's first occurrence and keep their items in input
// order.
func GroupByEmail[T any](items []T, email func(T) string) []Group[T] {
	var groups []Group[T]
	pos := make(map[string]int)
	for _, item := range items {
		key := email(item)
		i, ok := pos[key]
		if !ok {
			i = len(groups)
			pos[key] = i
			groups = append(groups, Group[T]{Email: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
