package container

import "iter"

// Queue is a FIFO container.
type Queue[T comparable] struct {
	head *node[T]
	tail *node[T]
	size int
}

// NewQueue creates an empty queue.
func NewQueue[T comparable]() *Queue[T] {
	return &Queue[T]{}
}

// Enqueue adds elem at the back of the queue.
func (q *Queue[T]) Enqueue(elem T) error {
	if isNil(elem) {
		return ErrNilElement
	}
	n := &node[T]{value: elem}
	if q.tail == nil {
		q.head = n
	} else {
		q.tail.next = n
	}
	q.tail = n
	q.size++
	return nil
}

// Dequeue removes and returns the front element.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if q.head == nil {
		return zero, ErrEmpty
	}
	n := q.head
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	q.size--
	return n.value, nil
}

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if q.head == nil {
		return zero, false
	}
	return q.head.value, true
}

// Contains reports whether elem is in the queue.
func (q *Queue[T]) Contains(elem T) bool {
	for n := q.head; n != nil; n = n.next {
		if n.value == elem {
			return true
		}
	}
	return false
}

// Remove deletes the occurrence of elem closest to the front.
func (q *Queue[T]) Remove(elem T) error {
	var prev *node[T]
	for n := q.head; n != nil; prev, n = n, n.next {
		if n.value != elem {
			continue
		}
		if prev == nil {
			q.head = n.next
		} else {
			prev.next = n.next
		}
		if q.tail == n {
			q.tail = prev
		}
		q.size--
		return nil
	}
	return ErrNotFound
}

// Len returns the number of elements.
func (q *Queue[T]) Len() int {
	return q.size
}

// IsEmpty reports whether the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool {
	return q.head == nil
}

// All iterates the queue from front to back.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := q.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Slice copies the queue into a slice, front first.
func (q *Queue[T]) Slice() []T {
	out := make([]T, 0, q.size)
	for v := range q.All() {
		out = append(out, v)
	}
	return out
}
