// Package loader drives paginated collection loading. It pulls pages in
// strict offset order from an injected fetcher, merges them with duplicate
// suppression, and reports progress between pages. A load is all-or-nothing:
// either the complete merged collection is delivered, or an error is and no
// partial result escapes.
package loader
