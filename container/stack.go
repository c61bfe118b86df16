package container

import "iter"

// Stack is a LIFO container.
type Stack[T comparable] struct {
	top  *node[T]
	size int
}

// NewStack creates an empty stack.
func NewStack[T comparable]() *Stack[T] {
	return &Stack[T]{}
}

// Push places elem on top of the stack.
func (s *Stack[T]) Push(elem T) error {
	if isNil(elem) {
		return ErrNilElement
	}
	s.top = &node[T]{value: elem, next: s.top}
	s.size++
	return nil
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.top == nil {
		return zero, ErrEmpty
	}
	n := s.top
	s.top = n.next
	s.size--
	return n.value, nil
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if s.top == nil {
		return zero, false
	}
	return s.top.value, true
}

// Contains reports whether elem is anywhere in the stack.
func (s *Stack[T]) Contains(elem T) bool {
	for n := s.top; n != nil; n = n.next {
		if n.value == elem {
			return true
		}
	}
	return false
}

// Remove deletes the occurrence of elem closest to the top.
func (s *Stack[T]) Remove(elem T) error {
	var prev *node[T]
	for n := s.top; n != nil; prev, n = n, n.next {
		if n.value != elem {
			continue
		}
		if prev == nil {
			s.top = n.next
		} else {
			prev.next = n.next
		}
		s.size--
		return nil
	}
	return ErrNotFound
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int {
	return s.size
}

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool {
	return s.top == nil
}

// All iterates the stack from top to bottom.
func (s *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := s.top; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Slice copies the stack into a slice, top first.
func (s *Stack[T]) Slice() []T {
	out := make([]T, 0, s.size)
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}
