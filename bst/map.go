package bst

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type (
	// RefSet is a plain map-backed set. It serves as the baseline the tree is measured against.
	RefSet[K constraints.Ordered] struct {
		mp map[K]struct{}
	}
)

func NewRefSet[K constraints.Ordered]() *RefSet[K] {
	return &RefSet[K]{mp: make(map[K]struct{})}
}

func (s *RefSet[K]) Search(key K) bool {
	_, ok := s.mp[key]
	return ok
}

func (s *RefSet[K]) Insert(key K) bool {
	if _, ok := s.mp[key]; ok {
		return false
	}
	s.mp[key] = struct{}{}
	return true
}

func (s *RefSet[K]) Remove(key K) bool {
	if _, ok := s.mp[key]; !ok {
		return false
	}
	delete(s.mp, key)
	return true
}

func (s *RefSet[K]) Close() {
	s.mp = nil
}

func (s *RefSet[K]) Len() int {
	return len(s.mp)
}

// Sorted returns the keys in ascending order.
func (s *RefSet[K]) Sorted() []K {
	keys := make([]K, 0, len(s.mp))
	for key := range s.mp {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
