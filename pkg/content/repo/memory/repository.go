package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/content-kit/pkg/collection"
	"github.com/tendant/content-kit/pkg/content"
)

// Repository implements content.Repository using in-memory storage
type Repository struct {
	mu       sync.RWMutex
	versions map[uuid.UUID][]*content.Record // record_id -> versions, oldest first
	order    []uuid.UUID                     // record ids in first-put order
	now      func() time.Time
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		versions: make(map[uuid.UUID][]*content.Record),
		now:      time.Now,
	}
}

var _ content.Repository = (*Repository)(nil)

func (r *Repository) Put(ctx context.Context, rec *content.Record) (*content.Record, error) {
	if rec == nil {
		return nil, content.ErrNilRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to avoid external modifications
	recCopy := *rec
	if recCopy.ID == uuid.Nil {
		recCopy.ID = uuid.New()
	}
	if recCopy.VersionID == uuid.Nil {
		recCopy.VersionID = uuid.New()
	}
	existing, exists := r.versions[recCopy.ID]
	if recCopy.Version == 0 {
		recCopy.Version = maxVersion(existing) + 1
	}
	if recCopy.UpdatedAt.IsZero() {
		recCopy.UpdatedAt = r.now()
	}
	if !exists {
		r.order = append(r.order, recCopy.ID)
	}
	r.versions[recCopy.ID] = append(existing, &recCopy)

	out := recCopy
	return &out, nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*content.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latest, ok := r.latest(id)
	if !ok {
		return nil, content.ErrRecordNotFound
	}
	// Return a copy to prevent external modifications
	recCopy := *latest
	return &recCopy, nil
}

func (r *Repository) Versions(ctx context.Context, id uuid.UUID) ([]*content.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, exists := r.versions[id]
	if !exists {
		return nil, content.ErrRecordNotFound
	}
	return copyAll(versions), nil
}

func (r *Repository) List(ctx context.Context, filter content.ListFilter) ([]*content.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*content.Record
	for _, id := range r.order {
		all = append(all, r.versions[id]...)
	}
	latest := collection.UniqueByDescending(slices.Values(all), recordID, recordVersion)

	result := copyAll(slices.DeleteFunc(latest, func(rec *content.Record) bool {
		return !filter.Matches(rec)
	}))

	// Sort by updated_at descending
	slices.SortStableFunc(result, func(a, b *content.Record) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return result, nil
}

func (r *Repository) Groups(ctx context.Context) ([]collection.Grouping[uuid.UUID, *content.Record], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]collection.Grouping[uuid.UUID, *content.Record], 0, len(r.order))
	for _, id := range r.order {
		groups = append(groups, collection.Grouping[uuid.UUID, *content.Record]{
			Key:   id,
			Items: copyAll(r.versions[id]),
		})
	}
	return groups, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	latest, ok := r.latest(id)
	if !ok {
		return content.ErrRecordNotFound
	}
	latest.Visibility = content.VisibilityDeleted
	latest.UpdatedAt = r.now()
	return nil
}

// latest must be called with r.mu held.
func (r *Repository) latest(id uuid.UUID) (*content.Record, bool) {
	versions := r.versions[id]
	if len(versions) == 0 {
		return nil, false
	}
	picked := collection.UniqueByDescending(slices.Values(versions), recordID, recordVersion)
	return picked[0], true
}

func recordID(rec *content.Record) uuid.UUID { return rec.ID }

func recordVersion(rec *content.Record) int { return rec.Version }

func maxVersion(versions []*content.Record) int {
	highest := 0
	for _, v := range versions {
		highest = max(highest, v.Version)
	}
	return highest
}

func copyAll(records []*content.Record) []*content.Record {
	out := make([]*content.Record, 0, len(records))
	for _, rec := range records {
		recCopy := *rec
		out = append(out, &recCopy)
	}
	return out
}
