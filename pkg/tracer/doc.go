// Package tracer walks a field along its gradient with a fixed step.
//
// The walk is a local, fixed-step method. It does not search for global
// extrema and recovers from nothing: the first non-finite sample or flat
// gradient ends the trace.
package tracer
