/*
Package observability provides tools for monitoring the descent engine.

It turns lifecycle hooks into Prometheus metrics and structured log records, so that
compilations, surface samplings and traces can be followed from a dashboard.
*/
package observability
