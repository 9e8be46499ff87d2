// Package viewcache keeps recently loaded collections and their browsing
// state in memory so returning to a collection restores it instantly
// without refetching. Entries expire a fixed interval after the collection
// was loaded; an expired entry is indistinguishable from an absent one.
package viewcache
