/*
Package session implements the interactive side of descent.

Controller drives a display host through ports.Renderer: it keeps the current field
snapshot, redraws the surface on every successful recompilation and runs one path
animation at a time.

Manager orchestrates access to stored traces across replicas, pairing a TraceStore with
local reference-counted locks and an optional distributed locker so that a trace is
replayed by one stream at a time.
*/
package session
