// Package download turns a browsed collection and its selection into
// concrete download requests. The planner resolves the selection against
// the collection's entries, applies per-entry setting overrides, and hands
// the ordered requests to a submitter. Queue is the default submitter,
// running requests through the yt-dlp binary with bounded parallelism.
package download
