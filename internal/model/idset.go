package model

import (
	"sort"
	"strings"
)

// IDSet is a duplicate-free collection of component ids.
// Storage backends persist it as a comma-joined string; everything above the
// persistence boundary works with the set directly.
type IDSet map[string]struct{}

// NewIDSet creates a set from the given ids
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts an id, returning true if it was not already present
func (s IDSet) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether the id is in the set
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids in the set
func (s IDSet) Len() int {
	return len(s)
}

// Values returns the ids in sorted order
func (s IDSet) Values() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy of the set
func (s IDSet) Clone() IDSet {
	c := make(IDSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// JoinIDs encodes a set as a comma-joined string for persistence.
// The empty set encodes as the empty string.
func JoinIDs(s IDSet) string {
	return strings.Join(s.Values(), ",")
}

// ParseIDs decodes a comma-joined string into a set, dropping empty segments
func ParseIDs(raw string) IDSet {
	s := make(IDSet)
	for _, id := range strings.Split(raw, ",") {
		if id != "" {
			s.Add(id)
		}
	}
	return s
}
