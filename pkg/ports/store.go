package ports

import (
	"context"

	"github.com/aretw0/descent/pkg/domain"
)

// TraceStore defines the interface for persisting finished traces so they can
// be listed and replayed later.
type TraceStore interface {
	// Save persists the trace under trace.ID.
	Save(ctx context.Context, trace *domain.Trace) error

	// Load retrieves a trace by ID.
	// Returns domain.ErrTraceNotFound if the trace does not exist.
	Load(ctx context.Context, id string) (*domain.Trace, error)

	// Delete removes a trace. Deleting a missing trace is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored traces.
	List(ctx context.Context) ([]string, error)
}
