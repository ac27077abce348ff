// Package seqasync walks a sequence and calls a blocking, context-aware
// operation on each item strictly one at a time.
//
// None of the helpers start goroutines. The next item is not pulled from the
// sequence until the current call has returned, so at most one call is in
// flight and side effects happen in input order. Use these when firing every
// call at once would be wrong: bounded resources, ordered writes, or a
// downstream that cannot take concurrent requests.
//
// The context is handed to every call unchanged. The helpers do not check it
// themselves; an operation that honours ctx ends the walk by returning its
// error.
package seqasync

import (
	"context"
	"iter"
)

// AwaitEach calls fn for every item of seq in order and collects the results.
// The first error stops the walk and is returned as is, with a nil slice.
func AwaitEach[T, R any](ctx context.Context, seq iter.Seq[T], fn func(context.Context, T) (R, error)) ([]R, error) {
	results := []R{}
	if seq == nil {
		return results, nil
	}
	for v := range seq {
		r, err := fn(ctx, v)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// ForEach is AwaitEach for operations that produce no result.
func ForEach[T any](ctx context.Context, seq iter.Seq[T], fn func(context.Context, T) error) error {
	if seq == nil {
		return nil
	}
	for v := range seq {
		if err := fn(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// AwaitWhile reports whether pred holds for every item. It stops at the first
// item for which pred returns false. An empty sequence yields true.
func AwaitWhile[T any](ctx context.Context, seq iter.Seq[T], pred func(context.Context, T) (bool, error)) (bool, error) {
	if seq == nil {
		return true, nil
	}
	for v := range seq {
		ok, err := pred(ctx, v)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// AwaitUntil walks seq until pred returns true for some item.
//
// Note the polarity: it returns false once the condition is reached and true
// only when the walk completed without pred ever returning true. Any is the
// "found a match" form.
func AwaitUntil[T any](ctx context.Context, seq iter.Seq[T], pred func(context.Context, T) (bool, error)) (bool, error) {
	if seq == nil {
		return true, nil
	}
	for v := range seq {
		hit, err := pred(ctx, v)
		if err != nil {
			return false, err
		}
		if hit {
			return false, nil
		}
	}
	return true, nil
}

// Any reports whether pred returns true for at least one item, stopping at
// the first match. An empty sequence yields false.
func Any[T any](ctx context.Context, seq iter.Seq[T], pred func(context.Context, T) (bool, error)) (bool, error) {
	completed, err := AwaitUntil(ctx, seq, pred)
	if err != nil {
		return false, err
	}
	return !completed, nil
}
