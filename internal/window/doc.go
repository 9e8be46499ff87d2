// Package window computes which slice of a large ordered collection must
// be materialized to fill a scrolled viewport, keeping render cost bounded
// by viewport size instead of collection size.
package window
