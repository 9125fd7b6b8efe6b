// Package async runs independent tasks concurrently and collects their
// errors. The pools command uses it to probe every known pool at once.
package async
