package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/descent/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTraceStoreContract runs a suite of tests to verify that a TraceStore implementation
// adheres to the defined interface contract.
func RunTraceStoreContract(t *testing.T, store TraceStore) {
	ctx := context.Background()
	traceID := "contract-test-trace-" + time.Now().Format("20060102150405")

	newTrace := func(id string) *domain.Trace {
		return &domain.Trace{
			ID:         id,
			Expression: "x^2+y^2",
			Start:      domain.Point{X: 1, Y: 1},
			Mode:       domain.ModeDescend,
			Reason:     domain.ReasonFlatGradient,
			Steps:      2,
			Waypoints:  []domain.Waypoint{{X: 1, Y: 1, Z: 2}, {X: 0.92, Y: 0.92, Z: 1.6928}},
			CreatedAt:  time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		trace := newTrace(traceID)

		err := store.Save(ctx, trace)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, traceID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, trace.Expression, loaded.Expression)
		assert.Equal(t, trace.Mode, loaded.Mode)
		assert.Equal(t, trace.Reason, loaded.Reason)
		assert.Equal(t, trace.Waypoints, loaded.Waypoints)
		assert.True(t, trace.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Load Isolated Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, traceID)
		require.NoError(t, err)
		loaded.Waypoints[0].X = 99

		again, err := store.Load(ctx, traceID)
		require.NoError(t, err)
		assert.Equal(t, 1.0, again.Waypoints[0].X, "mutating a loaded trace must not change the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+traceID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newTrace(traceID))
		require.NoError(t, err)

		err = store.Delete(ctx, traceID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, traceID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound, "Load after Delete should return ErrTraceNotFound")

		assert.NoError(t, store.Delete(ctx, traceID), "Delete of a missing trace should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := traceID + "-1"
		id2 := traceID + "-2"
		_ = store.Save(ctx, newTrace(id1))
		_ = store.Save(ctx, newTrace(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
