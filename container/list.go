package container

import (
	"fmt"
	"iter"
	"strings"
)

// List is a doubly linked, order preserving sequence.
type List[T comparable] struct {
	head *node[T]
	tail *node[T]
	size int
}

// NewList creates a list holding elems in order.
func NewList[T comparable](elems ...T) (*List[T], error) {
	l := &List[T]{}
	for _, e := range elems {
		if err := l.Add(e); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add appends elem to the end of the list.
func (l *List[T]) Add(elem T) error {
	return l.AddLast(elem)
}

// AddLast appends elem to the end of the list.
func (l *List[T]) AddLast(elem T) error {
	if isNil(elem) {
		return ErrNilElement
	}
	n := &node[T]{value: elem, prev: l.tail}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
	return nil
}

// AddFirst inserts elem at the front of the list.
func (l *List[T]) AddFirst(elem T) error {
	if isNil(elem) {
		return ErrNilElement
	}
	n := &node[T]{value: elem, next: l.head}
	if l.head == nil {
		l.tail = n
	} else {
		l.head.prev = n
	}
	l.head = n
	l.size++
	return nil
}

// Get returns the element at position i, walking from whichever end is closer.
func (l *List[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= l.size {
		return zero, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, l.size)
	}
	if i < l.size/2 {
		n := l.head
		for j := 0; j < i; j++ {
			n = n.next
		}
		return n.value, nil
	}
	n := l.tail
	for j := l.size - 1; j > i; j-- {
		n = n.prev
	}
	return n.value, nil
}

// IndexOf returns the position of the first occurrence of elem, or -1.
func (l *List[T]) IndexOf(elem T) int {
	i := 0
	for n := l.head; n != nil; n = n.next {
		if n.value == elem {
			return i
		}
		i++
	}
	return -1
}

// Contains reports whether elem is in the list.
func (l *List[T]) Contains(elem T) bool {
	return l.find(elem) != nil
}

// Remove unlinks the first occurrence of elem.
func (l *List[T]) Remove(elem T) error {
	n := l.find(elem)
	if n == nil {
		return ErrNotFound
	}
	l.unlink(n)
	return nil
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.size
}

// IsEmpty reports whether the list holds no elements.
func (l *List[T]) IsEmpty() bool {
	return l.size == 0
}

// Clear drops every element.
func (l *List[T]) Clear() {
	l.head, l.tail, l.size = nil, nil, 0
}

// Reverse returns a new list with the elements in reverse order.
func (l *List[T]) Reverse() *List[T] {
	r := &List[T]{}
	for n := l.head; n != nil; n = n.next {
		_ = r.AddFirst(n.value)
	}
	return r
}

// Copy returns a shallow copy of the list.
func (l *List[T]) Copy() *List[T] {
	c := &List[T]{}
	for n := l.head; n != nil; n = n.next {
		_ = c.AddLast(n.value)
	}
	return c
}

// All iterates the list front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Slice copies the list into a slice, front to back.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, l.size)
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

func (l *List[T]) String() string {
	parts := make([]string, 0, l.size)
	for v := range l.All() {
		parts = append(parts, fmt.Sprint(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List[T]) find(elem T) *node[T] {
	for n := l.head; n != nil; n = n.next {
		if n.value == elem {
			return n
		}
	}
	return nil
}

func (l *List[T]) unlink(n *node[T]) {
	if n.prev == nil {
		l.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		l.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
	l.size--
}
