package utils

// Set is an insertion-ordered set of strings. It is not safe for concurrent use.
type Set struct {
	seen  map[string]struct{}
	order []string
}

// NewSet creates a Set holding the given values.
func NewSet(values ...string) *Set {
	s := &Set{seen: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add returns true if the value was newly added, false if already present.
func (s *Set) Add(v string) bool {
	if _, exists := s.seen[v]; exists {
		return false
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// Contains returns true if the value is in the set.
func (s *Set) Contains(v string) bool {
	_, exists := s.seen[v]
	return exists
}

// Size returns the number of distinct values.
func (s *Set) Size() int {
	return len(s.seen)
}

// Values returns the values in insertion order.
func (s *Set) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
