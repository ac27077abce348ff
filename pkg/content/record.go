// Package content defines the record model the collection helpers are used
// with: a Record with a primary identity and a version identity, its
// Visibility, and helpers that flatten grouped records.
//
// Records are grouped with collection.GroupBy (or by a Repository). A group's
// key is usually the record ID, so a group holds every stored version of one
// record.
package content

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/content-kit/pkg/collection"
)

// Record is one version of a content record.
//
// ID is stable across versions. VersionID identifies one revision; several
// representations of the same revision share it.
type Record struct {
	ID         uuid.UUID  `json:"id"`
	VersionID  uuid.UUID  `json:"version_id"`
	Version    int        `json:"version"`
	Name       string     `json:"name,omitempty"`
	Visibility Visibility `json:"visibility"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ListFilter narrows Repository.List.
type ListFilter struct {
	// Visibilities keeps only records in one of these states. Empty keeps all.
	Visibilities []Visibility
}

// Matches reports whether r passes the filter.
func (f ListFilter) Matches(r *Record) bool {
	return len(f.Visibilities) == 0 || slices.Contains(f.Visibilities, r.Visibility)
}

// Repository stores record versions keyed by record ID.
type Repository interface {
	// Put stores a new version of r. A zero VersionID or Version is assigned.
	Put(ctx context.Context, r *Record) (*Record, error)
	// Get returns the latest version of a record.
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	// Versions returns every stored version of a record, oldest first.
	Versions(ctx context.Context, id uuid.UUID) ([]*Record, error)
	// List returns the latest version of each record that matches filter.
	List(ctx context.Context, filter ListFilter) ([]*Record, error)
	// Groups returns all versions grouped by record ID.
	Groups(ctx context.Context) ([]collection.Grouping[uuid.UUID, *Record], error)
	// Delete marks the latest version of a record as deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
