// Package scan walks the records of a content.Repository one at a time.
//
// Records are never processed concurrently: each Process call returns before
// the next record is handed out, so processors may touch shared resources
// without their own locking.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tendant/content-kit/pkg/collection"
	"github.com/tendant/content-kit/pkg/content"
	"github.com/tendant/content-kit/pkg/seqasync"
)

// Scanner queries records and processes them with the provided processor.
type Scanner struct {
	repo   content.Repository
	logger *slog.Logger
}

// New creates a new Scanner instance. A nil logger uses slog.Default().
func New(repo content.Repository, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{repo: repo, logger: logger}
}

// Options configures the scan operation.
type Options struct {
	// Visibilities limits the scan to records in these states. Empty scans all.
	Visibilities []content.Visibility

	// Filter further narrows the records to scan (optional)
	Filter func(*content.Record) bool

	// Processor defines the processing logic (required unless DryRun is true)
	Processor Processor

	// DryRun if true, doesn't process records, just reports what would be processed
	DryRun bool

	// StopOnError ends the scan at the first processor failure
	StopOnError bool

	// OnProgress is called after each record (optional)
	OnProgress func(processed, total int64)
}

// Result contains statistics about the scan operation.
type Result struct {
	// TotalFound is the number of records matching the options
	TotalFound int64

	// TotalProcessed is the number of records successfully processed
	TotalProcessed int64

	// TotalFailed is the number of records that failed processing
	TotalFailed int64

	// FailedIDs contains the IDs of records that failed processing
	FailedIDs []string
}

// Summary renders the result on one line.
func (r *Result) Summary() string {
	s := fmt.Sprintf("found=%d processed=%d failed=%d", r.TotalFound, r.TotalProcessed, r.TotalFailed)
	if ids, ok := collection.JoinNotEmpty(slices.Values(r.FailedIDs)); ok {
		s += " failed_ids=" + ids
	}
	return s
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeFailed
)

// Scan lists the records matching opts and processes each one in order with
// opts.Processor. A failing record is counted and scanning continues, unless
// opts.StopOnError is set.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{}

	if !opts.DryRun && opts.Processor == nil {
		return result, fmt.Errorf("processor is required when DryRun is false")
	}

	records, err := s.records(ctx, opts)
	if err != nil {
		return result, err
	}
	result.TotalFound = int64(len(records))

	err = seqasync.ForEach(ctx, slices.Values(records), func(ctx context.Context, rec *content.Record) error {
		o, err := s.processOne(ctx, opts, rec)
		switch o {
		case outcomeProcessed:
			result.TotalProcessed++
		case outcomeFailed:
			result.TotalFailed++
			result.FailedIDs = append(result.FailedIDs, rec.ID.String())
		}
		if opts.OnProgress != nil {
			opts.OnProgress(result.TotalProcessed+result.TotalFailed, result.TotalFound)
		}
		return err
	})
	if err != nil {
		return result, err
	}

	s.logger.Info("Scan completed", "found", result.TotalFound, "processed", result.TotalProcessed, "failed", result.TotalFailed)
	return result, nil
}

func (s *Scanner) processOne(ctx context.Context, opts Options, rec *content.Record) (outcome, error) {
	if opts.DryRun {
		s.logger.Info("[DRY-RUN] Would process record",
			"id", rec.ID, "version", rec.Version, "visibility", rec.Visibility)
		return outcomeProcessed, nil
	}

	if err := opts.Processor.Process(ctx, rec); err != nil {
		s.logger.Error("Failed to process record", "id", rec.ID, "version", rec.Version, "error", err)
		if opts.StopOnError || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return outcomeFailed, &content.RecordError{RecordID: rec.ID, Op: "process", Err: err}
		}
		return outcomeFailed, nil
	}
	return outcomeProcessed, nil
}

// ForEach is a convenience method that processes each record with a callback
// function.
//
// Example:
//
//	scanner.ForEach(ctx, nil, func(ctx context.Context, rec *content.Record) error {
//	    fmt.Printf("Processing %s\n", rec.ID)
//	    return doSomething(rec)
//	})
func (s *Scanner) ForEach(ctx context.Context, visibilities []content.Visibility, fn func(context.Context, *content.Record) error) (*Result, error) {
	return s.Scan(ctx, Options{
		Visibilities: visibilities,
		Processor:    ProcessorFunc(fn),
	})
}

// AllMatch reports whether pred holds for every record matching opts. It
// stops at the first record that does not match. opts.Processor is ignored.
func (s *Scanner) AllMatch(ctx context.Context, opts Options, pred func(context.Context, *content.Record) (bool, error)) (bool, error) {
	records, err := s.records(ctx, opts)
	if err != nil {
		return false, err
	}
	return seqasync.AwaitWhile(ctx, slices.Values(records), pred)
}

// AnyMatch reports whether pred holds for at least one record matching opts.
// It stops at the first match. opts.Processor is ignored.
func (s *Scanner) AnyMatch(ctx context.Context, opts Options, pred func(context.Context, *content.Record) (bool, error)) (bool, error) {
	records, err := s.records(ctx, opts)
	if err != nil {
		return false, err
	}
	return seqasync.Any(ctx, slices.Values(records), pred)
}

func (s *Scanner) records(ctx context.Context, opts Options) ([]*content.Record, error) {
	listed, err := s.repo.List(ctx, content.ListFilter{Visibilities: opts.Visibilities})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	if opts.Filter == nil {
		return listed, nil
	}
	return slices.Collect(collection.SelectWhere(slices.Values(listed), func(rec *content.Record) *content.Record {
		return rec
	}, opts.Filter)), nil
}
