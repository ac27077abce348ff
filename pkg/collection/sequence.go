// Package collection holds synchronous helpers for reshaping in-memory
// sequences: materializing, projecting, building maps, deduplicating,
// grouping and joining.
//
// Helpers accept iter.Seq for lazy input. A nil sequence behaves as an empty
// one. Nothing here mutates its input or keeps state between calls.
package collection

import (
	"iter"
	"reflect"
	"slices"
)

// Sequence is anything that can be enumerated in order.
type Sequence[T any] interface {
	All() iter.Seq[T]
}

// List is a materialized, indexable Sequence.
type List[T any] []T

// All yields the list items in index order.
func (l List[T]) All() iter.Seq[T] {
	return slices.Values(l)
}

// Lazy adapts an iter.Seq to Sequence.
type Lazy[T any] iter.Seq[T]

// All returns the wrapped sequence.
func (s Lazy[T]) All() iter.Seq[T] {
	if s == nil {
		return empty[T]
	}
	return iter.Seq[T](s)
}

// AsList returns s itself when it is already a List (no copy, same backing
// array). Any other Sequence is enumerated once into a new List. A plain []T
// must be converted with List[T](s) to take the no-copy path.
func AsList[T any](s Sequence[T]) List[T] {
	switch v := s.(type) {
	case nil:
		return nil
	case List[T]:
		return v
	default:
		return slices.Collect(s.All())
	}
}

// SelectWhere lazily applies transform to each item of seq. When keep is nil,
// projections that are nil (pointer, map, slice, func, chan, interface) are
// dropped. Otherwise only projections for which keep returns true are yielded.
//
// The returned sequence reruns transform every time it is ranged over.
func SelectWhere[T, R any](seq iter.Seq[T], transform func(T) R, keep func(R) bool) iter.Seq[R] {
	if seq == nil {
		return empty[R]
	}
	if keep == nil {
		keep = notNil[R]
	}
	return func(yield func(R) bool) {
		for v := range seq {
			r := transform(v)
			if !keep(r) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

func empty[T any](func(T) bool) {}

func notNil[R any](r R) bool {
	v := reflect.ValueOf(any(r))
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return !v.IsNil()
	}
	return true
}
