package scan

import (
	"context"

	"github.com/tendant/content-kit/pkg/content"
)

// Processor processes individual records.
// External apps implement this to define custom processing logic, for example
// re-indexing, emitting change events or validating version integrity.
type Processor interface {
	// Process is called for each record found during a scan.
	// Return error to mark this record as failed.
	Process(ctx context.Context, rec *content.Record) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, rec *content.Record) error

func (f ProcessorFunc) Process(ctx context.Context, rec *content.Record) error {
	return f(ctx, rec)
}
