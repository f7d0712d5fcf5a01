// Package sets provides a generic Set for ordered comparable types.
//
// Sets back the TLD allow and deny lists. Map and Difference return new sets
// that never share storage with their source.
package sets

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/constraints"
)

// OrderedComparable constrains elements so All can return them sorted.
type OrderedComparable interface {
	constraints.Ordered
	comparable
}

// Set is an unordered collection of distinct labels or values.
// The zero value is empty and ready to use.
type Set[T OrderedComparable] struct {
	values map[T]struct{}
}

// New returns a set holding ts. Duplicates collapse:
//
//	s := sets.New("com", "org", "com") // {com, org}
func New[T OrderedComparable](ts ...T) *Set[T] {
	values := make(map[T]struct{}, len(ts))
	for _, t := range ts {
		values[t] = struct{}{}
	}

	return &Set[T]{
		values: values,
	}
}

// FromMap creates a set from the keys of m.
func FromMap[T OrderedComparable, V any](m map[T]V) *Set[T] {
	s := &Set[T]{values: make(map[T]struct{}, len(m))}
	for k := range m {
		s.values[k] = struct{}{}
	}

	return s
}

// Add inserts ts in place.
func (s *Set[T]) Add(ts ...T) {
	if s.values == nil {
		s.values = make(map[T]struct{}, len(ts))
	}
	for _, t := range ts {
		s.values[t] = struct{}{}
	}
}

// Len is 0 for a nil set.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}

	return len(s.values)
}

func (s *Set[T]) IsEmpty() bool {
	return s.Len() == 0
}

// Has reports membership. A nil set holds nothing.
func (s *Set[T]) Has(t T) bool {
	if s == nil || s.values == nil {
		return false
	}
	_, ok := s.values[t]
	return ok
}

// All returns the elements in ascending order.
func (s *Set[T]) All() []T {
	if s.Len() == 0 {
		return []T{}
	}

	res := make([]T, 0, len(s.values))
	for t := range s.values {
		res = append(res, t)
	}

	slices.Sort(res)
	return res
}

// String formats the sorted elements, e.g. {com, org}.
func (s *Set[T]) String() string {
	if s.IsEmpty() {
		return "{}"
	}

	elements := s.All()
	strs := make([]string, len(elements))
	for i, elem := range elements {
		strs[i] = fmt.Sprint(elem)
	}

	return "{" + strings.Join(strs, ", ") + "}"
}

// Map returns a new set with fn applied to every element, e.g.
// s.Map(strings.ToLower). Elements that collide after mapping merge.
func (s *Set[T]) Map(fn func(T) T) *Set[T] {
	m := &Set[T]{values: make(map[T]struct{}, s.Len())}
	if s == nil {
		return m
	}
	for t := range s.values {
		m.values[fn(t)] = struct{}{}
	}

	return m
}

// Difference returns a new set with the elements of s that are not in other.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	d := &Set[T]{values: make(map[T]struct{})}
	if s == nil {
		return d
	}
	for t := range s.values {
		if !other.Has(t) {
			d.values[t] = struct{}{}
		}
	}

	return d
}
