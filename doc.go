// Package fuzzgo provides an embeddable interactive fuzzy finder engine.
//
// A Finder ingests an unbounded stream of textual items (file paths, log
// lines) while the query changes underneath it, and continuously publishes
// ranked snapshots of the best-matching items. Scoring runs on a fixed
// worker pool; stale work is cancelled cheaply through per-pass version
// ticks, so the visible ranking stays fresh even with millions of items.
//
// Features:
//
//   - Lock-free item reads over an append-only chunked arena
//   - Boundary-aware fuzzy scoring with ASCII case folding
//   - Parallel scoring with cooperative cancellation of stale passes
//   - Double-buffered snapshots: the reader never blocks the pipeline
//   - Edge-triggered, pollable wake-up descriptor (eventfd on Linux)
//   - Zero allocation on the scoring hot path after steady state
//
// # Quick Start
//
//	fz, err := fuzzgo.New()
//	if err != nil {
//	    panic(err)
//	}
//	if err := fz.Start(); err != nil {
//	    panic(err)
//	}
//	defer fz.Stop()
//
//	fz.PushItem([]byte("src/main.go"))
//	fz.PushItem([]byte("README.md"))
//	fz.CommitItems()
//	fz.SetQuery("rm")
//
//	// Poll fz.NotifyHandle(), then:
//	if fz.LoadResults() {
//	    for i := 0; i < fz.ResultsLen(); i++ {
//	        r := fz.Result(i)
//	        fmt.Printf("%s (%.3f)\n", r.Line, r.Score)
//	    }
//	}
//
// The producer (PushItem, CommitItems, ScanFeed, ScanEnd), the query writer
// (SetQuery) and the reader (LoadResults, Result, Processing) may each live
// on their own goroutine; no calls block each other.
package fuzzgo
