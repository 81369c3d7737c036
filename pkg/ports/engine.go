package ports

import (
	"context"

	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/field"
)

// Engine defines the stateless core used by adapters (e.g., HTTP, MCP) that keep
// their own state per request.
type Engine interface {
	// Compile translates markup and compiles it into an immutable snapshot.
	Compile(ctx context.Context, markup string) (*field.Snapshot, error)

	// Surface samples the snapshot over the given ranges.
	Surface(ctx context.Context, snap *field.Snapshot, ranges domain.Ranges) (*domain.Grid, error)

	// Trace walks the snapshot's gradient from start. A trace shorter than two
	// points is returned together with domain.ErrPathTooShort.
	Trace(ctx context.Context, snap *field.Snapshot, start domain.Point, mode domain.Mode) (*domain.Trace, error)
}
