// SPDX-License-Identifier: MIT
//
// Package set is a minimal generic hash set. The zero value is empty and
// ready to use.
package set

import (
	"iter"
	"maps"
)

// Set holds distinct comparable values.
type Set[T comparable] struct {
	values map[T]struct{}
}

// Of returns a set holding values.
func Of[T comparable](values ...T) *Set[T] {
	s := &Set[T]{}
	for _, v := range values {
		s.Insert(v)
	}

	return s
}

// Insert adds value.
func (s *Set[T]) Insert(value T) {
	if s.values == nil {
		s.values = make(map[T]struct{})
	}

	s.values[value] = struct{}{}
}

// Remove deletes value if present.
func (s *Set[T]) Remove(value T) {
	delete(s.values, value)
}

// Has reports membership.
func (s *Set[T]) Has(value T) bool {
	_, ok := s.values[value]
	return ok
}

// Iter yields the values in unspecified order.
func (s *Set[T]) Iter() iter.Seq[T] {
	return maps.Keys(s.values)
}

// Len returns the number of values.
func (s *Set[T]) Len() int {
	return len(s.values)
}

// Intersects reports whether s and o share a value.
func (s *Set[T]) Intersects(o *Set[T]) bool {
	small, large := s, o
	if small.Len() > large.Len() {
		small, large = large, small
	}
	for v := range small.values {
		if large.Has(v) {
			return true
		}
	}

	return false
}

// Absorb moves every value of o into s and empties o.
func (s *Set[T]) Absorb(o *Set[T]) {
	for v := range o.values {
		s.Insert(v)
	}
	o.values = nil
}
