// Package engine drives a single wizard session over a validated step graph.
//
// An Engine tracks the current step, the visited history and the data
// collected so far. Every rejected call leaves the session untouched.
// Engines are not safe for concurrent use.
package engine
