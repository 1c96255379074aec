// Package engine provides the concurrent matching pipeline behind a finder.
//
// A dedicated coordinator goroutine consumes commit, query and stop events.
// For every event it decides whether the in-flight pass is stale, cancels it
// if so, and dispatches a fresh pass over the committed items to a fixed
// pool of scoring workers. Worker shards are merged into a ranked snapshot,
// published through a transactional buffer swap, and announced to the
// reader over the wake-up notifier.
//
// # Architecture
//
//   - TxValue: single-producer/single-consumer versioned hand-off used for
//     both the query string and the results snapshot
//   - events: atomic event bits with a one-slot wake channel
//   - pass: per-dispatch state, carrying the cancel flag and shard slots
//   - pool: long-lived scoring workers with persistent scratch buffers
//   - Coordinator: the event loop that owns all pass-control state
//
// Only the coordinator mutates pass-control state; workers touch their own
// scratch and their shard slot. Cancellation is cooperative through the
// pass's atomic flag, checked at bounded intervals inside each shard.
package engine
