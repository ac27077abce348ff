package content

import (
	"iter"

	"github.com/google/uuid"
	"github.com/tendant/content-kit/pkg/collection"
)

// UniqueValues flattens groups and keeps one record per VersionID, the first
// one seen. nil records are skipped.
func UniqueValues[K comparable](groups []collection.Grouping[K, *Record]) []*Record {
	return collection.Unique(flatten(groups), func(r *Record) uuid.UUID {
		return r.VersionID
	})
}

// SingleValues returns the only record of every group. A group that is empty
// or holds more than one record fails with a *GroupError wrapping
// ErrMultiplicityViolation.
func SingleValues[K comparable](groups []collection.Grouping[K, *Record]) ([]*Record, error) {
	out := make([]*Record, 0, len(groups))
	for _, g := range groups {
		if len(g.Items) != 1 {
			return nil, &GroupError{Key: g.Key, Count: len(g.Items), Err: ErrMultiplicityViolation}
		}
		out = append(out, g.Items[0])
	}
	return out, nil
}

func flatten[K comparable](groups []collection.Grouping[K, *Record]) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, g := range groups {
			for _, r := range g.Items {
				if r == nil {
					continue
				}
				if !yield(r) {
					return
				}
			}
		}
	}
}
