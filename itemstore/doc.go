// Package itemstore provides the append-only item arena backing a finder.
//
// # Concurrency Model
//
// The store has exactly one producer and any number of readers. The producer
// calls Push and Commit; readers call Size and At. Readers never observe an
// item before the Commit that published it: Commit stores the committed size
// with release semantics, Size loads it with acquire semantics, and At must
// only be called with indexes below a size the caller has already read.
//
// # Memory Management
//
// Item bytes live in exponentially growing chunks. A chunk is never
// reallocated or moved once published, so byte slices returned by At stay
// valid for the lifetime of the store. The chunk table is a fixed-size array
// of atomic pointers; publishing a chunk is a single pointer store.
package itemstore
