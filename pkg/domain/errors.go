package domain

import "errors"

// ErrParseFailure is returned when a flat expression cannot be parsed or compiled.
var ErrParseFailure = errors.New("expression error")

// ErrDerivativeUnavailable is reported when symbolic differentiation fails and the
// numeric gradient is used instead. It is advisory, never fatal.
var ErrDerivativeUnavailable = errors.New("symbolic derivative unavailable")

// ErrPathTooShort is returned when a trace records fewer than two waypoints.
var ErrPathTooShort = errors.New("cannot calculate path from this start point (gradient may be zero)")

// ErrInvalidStartPoint is returned when start coordinates are not parseable numbers.
var ErrInvalidStartPoint = errors.New("please select a valid start point")

// ErrTraceNotFound is returned when a trace ID cannot be found in the store.
var ErrTraceNotFound = errors.New("trace not found")

// ErrInvalidConfig is returned when settings fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")
