// Package surface samples a field on a regular grid for rendering.
package surface
