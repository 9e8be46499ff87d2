// Package model contains core data structures for collection browsing:
// collection entries, fetched collections, the download selection and
// per-screen view state.
package model
