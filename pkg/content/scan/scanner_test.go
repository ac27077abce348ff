package scan_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-kit/pkg/content"
	"github.com/tendant/content-kit/pkg/content/repo/memory"
	"github.com/tendant/content-kit/pkg/content/scan"
)

func seed(t *testing.T) (*memory.Repository, []*content.Record) {
	t.Helper()
	repo := memory.New()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	inputs := []*content.Record{
		{Name: "alpha", Visibility: content.VisibilityPublished, UpdatedAt: base.Add(3 * time.Minute)},
		{Name: "beta", Visibility: content.VisibilityDraft, UpdatedAt: base.Add(2 * time.Minute)},
		{Name: "gamma", Visibility: content.VisibilityPublished, UpdatedAt: base.Add(time.Minute)},
	}
	var stored []*content.Record
	for _, in := range inputs {
		rec, err := repo.Put(ctx, in)
		require.NoError(t, err)
		stored = append(stored, rec)
	}
	return repo, stored
}

func newScanner(repo content.Repository) (*scan.Scanner, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return scan.New(repo, logger), &buf
}

func TestScan_ProcessesInOrder(t *testing.T) {
	repo, _ := seed(t)
	scanner, _ := newScanner(repo)

	var names []string
	var progress [][2]int64
	result, err := scanner.Scan(context.Background(), scan.Options{
		Processor: scan.ProcessorFunc(func(ctx context.Context, rec *content.Record) error {
			names = append(names, rec.Name)
			return nil
		}),
		OnProgress: func(processed, total int64) {
			progress = append(progress, [2]int64{processed, total})
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, names)
	assert.Equal(t, int64(3), result.TotalFound)
	assert.Equal(t, int64(3), result.TotalProcessed)
	assert.Equal(t, int64(0), result.TotalFailed)
	assert.Equal(t, [][2]int64{{1, 3}, {2, 3}, {3, 3}}, progress)
	assert.Equal(t, "found=3 processed=3 failed=0", result.Summary())
}

func TestScan_VisibilityAndFilter(t *testing.T) {
	repo, _ := seed(t)
	scanner, _ := newScanner(repo)

	var names []string
	result, err := scanner.Scan(context.Background(), scan.Options{
		Visibilities: []content.Visibility{content.VisibilityPublished},
		Filter:       func(rec *content.Record) bool { return rec.Name != "alpha" },
		Processor: scan.ProcessorFunc(func(ctx context.Context, rec *content.Record) error {
			names = append(names, rec.Name)
			return nil
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma"}, names)
	assert.Equal(t, int64(1), result.TotalFound)
}

func TestScan_FailuresContinue(t *testing.T) {
	repo, stored := seed(t)
	scanner, logs := newScanner(repo)

	var names []string
	result, err := scanner.Scan(context.Background(), scan.Options{
		Processor: scan.ProcessorFunc(func(ctx context.Context, rec *content.Record) error {
			names = append(names, rec.Name)
			if rec.Name == "beta" {
				return errors.New("broken")
			}
			return nil
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, names)
	assert.Equal(t, int64(2), result.TotalProcessed)
	assert.Equal(t, int64(1), result.TotalFailed)
	assert.Equal(t, []string{stored[1].ID.String()}, result.FailedIDs)
	assert.Contains(t, result.Summary(), "failed_ids="+stored[1].ID.String())
	assert.Contains(t, logs.String(), "Failed to process record")
}

func TestScan_StopOnError(t *testing.T) {
	repo, stored := seed(t)
	scanner, _ := newScanner(repo)
	broken := errors.New("broken")

	var names []string
	result, err := scanner.Scan(context.Background(), scan.Options{
		StopOnError: true,
		Processor: scan.ProcessorFunc(func(ctx context.Context, rec *content.Record) error {
			names = append(names, rec.Name)
			if rec.Name == "beta" {
				return broken
			}
			return nil
		}),
	})
	require.ErrorIs(t, err, broken)

	var recErr *content.RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, stored[1].ID, recErr.RecordID)
	assert.Equal(t, []string{"alpha", "beta"}, names)
	assert.Equal(t, int64(1), result.TotalProcessed)
	assert.Equal(t, int64(1), result.TotalFailed)
}

func TestScan_CancellationStops(t *testing.T) {
	repo, _ := seed(t)
	scanner, _ := newScanner(repo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	_, err := scanner.Scan(ctx, scan.Options{
		Processor: scan.ProcessorFunc(func(ctx context.Context, rec *content.Record) error {
			calls++
			cancel()
			return ctx.Err()
		}),
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestScan_DryRun(t *testing.T) {
	repo, _ := seed(t)
	scanner, logs := newScanner(repo)

	result, err := scanner.Scan(context.Background(), scan.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalProcessed)
	assert.Contains(t, logs.String(), "[DRY-RUN] Would process record")
	assert.Contains(t, logs.String(), "visibility=draft")
}

func TestScan_RequiresProcessor(t *testing.T) {
	repo, _ := seed(t)
	scanner, _ := newScanner(repo)

	_, err := scanner.Scan(context.Background(), scan.Options{})
	assert.EqualError(t, err, "processor is required when DryRun is false")
}

func TestScan_ListError(t *testing.T) {
	listErr := errors.New("unavailable")
	scanner, _ := newScanner(failingRepo{err: listErr})

	_, err := scanner.Scan(context.Background(), scan.Options{DryRun: true})
	assert.ErrorIs(t, err, listErr)

	_, err = scanner.AnyMatch(context.Background(), scan.Options{}, func(context.Context, *content.Record) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, listErr)
}

func TestForEach(t *testing.T) {
	repo, _ := seed(t)
	scanner, _ := newScanner(repo)

	var names []string
	result, err := scanner.ForEach(context.Background(), []content.Visibility{content.VisibilityDraft}, func(ctx context.Context, rec *content.Record) error {
		names = append(names, rec.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)
	assert.Equal(t, int64(1), result.TotalProcessed)
}

func TestAllMatchAndAnyMatch(t *testing.T) {
	repo, _ := seed(t)
	scanner, _ := newScanner(repo)
	ctx := context.Background()

	var seen []string
	isPublished := func(ctx context.Context, rec *content.Record) (bool, error) {
		seen = append(seen, rec.Name)
		return rec.Visibility == content.VisibilityPublished, nil
	}

	all, err := scanner.AllMatch(ctx, scan.Options{}, isPublished)
	require.NoError(t, err)
	assert.False(t, all)
	assert.Equal(t, []string{"alpha", "beta"}, seen)

	seen = nil
	all, err = scanner.AllMatch(ctx, scan.Options{Visibilities: []content.Visibility{content.VisibilityPublished}}, isPublished)
	require.NoError(t, err)
	assert.True(t, all)

	seen = nil
	isDraft := func(ctx context.Context, rec *content.Record) (bool, error) {
		seen = append(seen, rec.Name)
		return rec.Visibility == content.VisibilityDraft, nil
	}
	found, err := scanner.AnyMatch(ctx, scan.Options{}, isDraft)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"alpha", "beta"}, seen)

	found, err = scanner.AnyMatch(ctx, scan.Options{Visibilities: []content.Visibility{content.VisibilityDeleted}}, isDraft)
	require.NoError(t, err)
	assert.False(t, found)
}

type failingRepo struct {
	content.Repository
	err error
}

func (r failingRepo) List(ctx context.Context, filter content.ListFilter) ([]*content.Record, error) {
	return nil, r.err
}
