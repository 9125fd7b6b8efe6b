// Package bundle packages generated artifacts. A zip archive is a best
// effort convenience layered over writing every artifact individually,
// which is the guaranteed baseline.
package bundle
