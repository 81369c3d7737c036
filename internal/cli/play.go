package cli

import (
	"context"
	"io"

	"github.com/aretw0/descent/internal/presentation/tui"
	"github.com/aretw0/descent/pkg/animation"
	"github.com/aretw0/descent/pkg/domain"
)

// PlayTrace replays t on w at fps, moving a terminal marker per frame.
// It returns ctx.Err() when interrupted before the last frame.
func PlayTrace(ctx context.Context, w io.Writer, t *domain.Trace, fps int, rich bool, opts ...animation.LoopOption) error {
	if err := t.Err(); err != nil {
		return err
	}
	marker := tui.NewMarker(w, len(t.Waypoints), rich)
	defer marker.Done()

	return animation.Play(ctx, animation.Playback{
		Frames: len(t.Waypoints),
		FPS:    fps,
		OnFrame: func(i int) {
			marker.Move(i, t.Waypoints[i])
		},
	}, opts...)
}
