package launchcfg

import "sort"

// stringSet is an insertion-ordered set of strings.
type stringSet struct {
	set  map[string]struct{}
	list []string
}

func newStringSet() *stringSet {
	return &stringSet{set: make(map[string]struct{})}
}

// Len(gth) or size of set
func (s *stringSet) Len() int {
	return len(s.list)
}

// Add adds k if not already present.
func (s *stringSet) Add(k string) bool {
	if _, ok := s.set[k]; ok {
		return false
	}
	s.set[k] = struct{}{}
	s.list = append(s.list, k)
	return true
}

// List returns the insertion-ordered entries.
func (s *stringSet) List() []string {
	return append([]string(nil), s.list...)
}

// Sorted returns the entries in lexical order.
func (s *stringSet) Sorted() []string {
	l := s.List()
	sort.Strings(l)
	return l
}
