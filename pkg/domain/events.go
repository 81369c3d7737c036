package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCompile EventType = "compile"
	EventSample  EventType = "sample"
	EventTrace   EventType = "trace"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// CompileEvent is emitted after every compilation attempt.
type CompileEvent struct {
	EventBase
	Markup          string `json:"markup"`
	Expression      string `json:"expression"`
	NumericGradient bool   `json:"numeric_gradient"`
	Err             error  `json:"-"`
}

// SampleEvent is emitted after a surface has been sampled.
type SampleEvent struct {
	EventBase
	Cells    int           `json:"cells"`
	Gaps     int           `json:"gaps"`
	Duration time.Duration `json:"duration"`
}

// TraceEvent is emitted after a trace terminates.
type TraceEvent struct {
	EventBase
	Reason   Reason        `json:"reason"`
	Status   Status        `json:"status"`
	Points   int           `json:"points"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnCompile func(context.Context, *CompileEvent)
	OnSample  func(context.Context, *SampleEvent)
	OnTrace   func(context.Context, *TraceEvent)
}
