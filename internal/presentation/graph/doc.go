// Package graph draws surfaces and traces as plain terminal text.
package graph
