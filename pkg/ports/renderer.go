package ports

import "github.com/aretw0/descent/pkg/domain"

// Renderer is the display host. The session controller emits presentation
// requests and the host implements this interface to handle them.
type Renderer interface {
	// DrawSurface replaces the displayed surface.
	DrawSurface(grid *domain.Grid, opacity float64)

	// SetOpacity restyles the displayed surface.
	SetOpacity(opacity float64)

	// DrawPath shows a traced path with the marker at its first point.
	DrawPath(path []domain.Waypoint)

	// MoveMarker moves the marker to a waypoint of the displayed path.
	MoveMarker(w domain.Waypoint)

	// ClearPath removes the path and marker, if any.
	ClearPath()

	// ShowMessage displays advisory text. An empty message clears it.
	ShowMessage(msg string)

	// SetControlsEnabled toggles the update and animate controls.
	SetControlsEnabled(enabled bool)
}
