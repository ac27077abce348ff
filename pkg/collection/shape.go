package collection

import (
	"iter"
	"strings"

	"golang.org/x/exp/constraints"
)

// DefaultSeparator is used by JoinNotEmpty.
const DefaultSeparator = ","

// Grouping is a key together with the items that share it.
type Grouping[K comparable, V any] struct {
	Key   K
	Items []V
}

// ToMapOverwrite indexes seq by key. When two items share a key the later one
// wins; duplicates never fail.
func ToMapOverwrite[T any, K comparable](seq iter.Seq[T], key func(T) K) map[K]T {
	return ToMapOverwriteValues(seq, key, func(v T) T { return v })
}

// ToMapOverwriteValues is ToMapOverwrite with a value projection.
func ToMapOverwriteValues[T any, K comparable, V any](seq iter.Seq[T], key func(T) K, value func(T) V) map[K]V {
	m := make(map[K]V)
	if seq == nil {
		return m
	}
	for v := range seq {
		m[key(v)] = value(v)
	}
	return m
}

// GroupBy splits seq into groups by key. Groups come out in the order their
// key was first seen and items keep their input order.
func GroupBy[T any, K comparable](seq iter.Seq[T], key func(T) K) []Grouping[K, T] {
	groups := []Grouping[K, T]{}
	if seq == nil {
		return groups
	}
	index := make(map[K]int)
	for v := range seq {
		k := key(v)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Grouping[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, v)
	}
	return groups
}

// Unique keeps the first item seen for each key, in first-seen key order.
func Unique[T any, K comparable](seq iter.Seq[T], key func(T) K) []T {
	return pick(seq, key, func(T, T) bool { return false })
}

// UniqueBy keeps, for each key, the item with the smallest order value. Ties
// go to the item seen first.
func UniqueBy[T any, K comparable, O constraints.Ordered](seq iter.Seq[T], key func(T) K, order func(T) O) []T {
	return pick(seq, key, func(candidate, current T) bool {
		return order(candidate) < order(current)
	})
}

// UniqueByDescending keeps, for each key, the item with the largest order
// value. Ties go to the item seen first.
func UniqueByDescending[T any, K comparable, O constraints.Ordered](seq iter.Seq[T], key func(T) K, order func(T) O) []T {
	return pick(seq, key, func(candidate, current T) bool {
		return order(candidate) > order(current)
	})
}

// pick keeps one survivor per key, replacing it only when better reports the
// candidate strictly preferable.
func pick[T any, K comparable](seq iter.Seq[T], key func(T) K, better func(candidate, current T) bool) []T {
	out := []T{}
	if seq == nil {
		return out
	}
	index := make(map[K]int)
	for v := range seq {
		k := key(v)
		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, v)
			continue
		}
		if better(v, out[i]) {
			out[i] = v
		}
	}
	return out
}

// JoinNotEmpty joins the non-blank strings of seq with DefaultSeparator.
// See JoinNotEmptyWith.
func JoinNotEmpty(seq iter.Seq[string]) (string, bool) {
	return JoinNotEmptyWith(seq, DefaultSeparator)
}

// JoinNotEmptyWith drops empty and whitespace-only strings and joins the rest
// with sep. It returns false when nothing is left to join, so callers can tell
// that apart from a join that produced "".
func JoinNotEmptyWith(seq iter.Seq[string], sep string) (string, bool) {
	if seq == nil {
		return "", false
	}
	var parts []string
	for s := range seq {
		if strings.TrimSpace(s) == "" {
			continue
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, sep), true
}
