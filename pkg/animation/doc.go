// Package animation replays a traced path at a fixed frame rate.
//
// A Scheduler is a state machine driven by a FrameRequester: the host calls
// back once per display refresh with a timestamp, and the scheduler advances
// its frame index by the whole number of frame intervals that have elapsed.
// Slow refreshes skip frames rather than slowing playback down.
//
// Loop is a FrameRequester for hosts without a display refresh of their own,
// such as the CLI and the SSE playback endpoint.
package animation
