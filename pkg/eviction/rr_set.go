package eviction

import (
	"github.com/buildbarn/bb-replacer/pkg/random"
)

type rrSet[T comparable] struct {
	generator random.SingleThreadedGenerator
	elements  []T
}

// NewRRSet creates a new cache replacement set that implements the
// Random Replacement (RR) policy.
//
// https://en.wikipedia.org/wiki/Cache_replacement_policies#Random_replacement_(RR)
func NewRRSet[T comparable](generator random.SingleThreadedGenerator) Set[T] {
	return &rrSet[T]{
		generator: generator,
	}
}

func (s *rrSet[T]) Insert(value T) {
	// Insert element into a random location in the list, opening up
	// space by moving an existing element to the end of the list.
	index := s.generator.IntN(len(s.elements) + 1)
	if index == len(s.elements) {
		s.elements = append(s.elements, value)
	} else {
		s.elements = append(s.elements, s.elements[index])
		s.elements[index] = value
	}
}

func (s *rrSet[T]) Touch(value T) {
}

func (s *rrSet[T]) Peek() T {
	return s.elements[len(s.elements)-1]
}

func (s *rrSet[T]) Remove() {
	s.elements = s.elements[:len(s.elements)-1]
}

func (s *rrSet[T]) Delete(value T) {
	// Order carries no meaning, so fill the hole with the last
	// element.
	last := len(s.elements) - 1
	for i, element := range s.elements {
		if element == value {
			s.elements[i] = s.elements[last]
			s.elements = s.elements[:last]
			return
		}
	}
	panic("Attempted to delete value that is not present in the cache replacement set")
}

func (s *rrSet[T]) Len() int {
	return len(s.elements)
}
