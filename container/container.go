// Package container provides the generic ordered containers the maze algorithms are
// built on: a doubly linked List, a LIFO Stack and a FIFO Queue.
//
// None of the containers accept nil elements, and all of them compare elements with ==.
// They are not safe for concurrent use.
package container

import (
	"errors"
	"reflect"
)

var (
	ErrNilElement      = errors.New("nil element")
	ErrEmpty           = errors.New("container is empty")
	ErrNotFound        = errors.New("element not found")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// isNil reports whether v is nil or a typed nil pointer, channel or interface.
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// node is the link shared by all three containers.
type node[T comparable] struct {
	value T
	prev  *node[T]
	next  *node[T]
}
