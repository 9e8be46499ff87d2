// Package fetch resolves collection URLs into pages of entries. The remote
// side has no offset support, so the service pulls the whole flat listing
// once per URL, keeps it for the session, and serves offset/limit slices
// from the kept copy. Raw listings come from an injectable dumper that
// produces yt-dlp flat-playlist JSON, with a library-based fallback for
// plain playlist URLs.
package fetch
