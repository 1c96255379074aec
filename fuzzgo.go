package fuzzgo

import (
	"fmt"
	"sync"

	"github.com/hupe1980/fuzzgo/engine"
	"github.com/hupe1980/fuzzgo/itemstore"
	"github.com/hupe1980/fuzzgo/notify"
	"github.com/hupe1980/fuzzgo/scanner"
)

// Result is one row of the reader-visible snapshot.
type Result struct {
	// Line is the item's bytes. Valid for the lifetime of the finder; do
	// not modify.
	Line []byte
	// Score is the match score against the snapshot's query version.
	Score float32
	// Index is the item's stable position in input order.
	Index uint32
}

type finderState int

const (
	stateNew finderState = iota
	stateRunning
	stateStopped
)

// Finder is the fuzzy finder engine. Create with New, bring up with Start,
// tear down with Stop.
//
// Thread roles: one producer goroutine owns PushItem, CommitItems, ScanFeed
// and ScanEnd; one goroutine owns SetQuery; one reader goroutine owns
// NotifyHandle, LoadResults, ResultsLen, Result and Processing. The query
// writer and the reader are usually the same UI goroutine, as they were
// here in cmd/fuzzgo.
type Finder struct {
	store    *itemstore.Store
	query    *engine.TxValue[string]
	results  *engine.TxValue[engine.Results]
	notifier notify.Notifier
	coord    *engine.Coordinator
	scan     scanner.LineScanner
	logger   *Logger
	metrics  MetricsCollector

	mu    sync.Mutex
	state finderState
}

// New creates a Finder. It allocates the wake-up descriptor but starts no
// goroutines; call Start for that.
func New(opts ...Option) (*Finder, error) {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	notifier := o.notifier
	if notifier == nil {
		var err error
		if notifier, err = notify.New(); err != nil {
			return nil, fmt.Errorf("fuzzgo: create notifier: %w", err)
		}
	}

	store := itemstore.New(
		itemstore.WithChunkSize(o.chunkSize),
		itemstore.WithMaxItemLength(o.maxItemLength),
	)
	query := engine.NewTxValue[string]()
	results := engine.NewTxValue[engine.Results]()

	f := &Finder{
		store:    store,
		query:    query,
		results:  results,
		notifier: notifier,
		logger:   o.logger,
		metrics:  o.metrics,
	}
	f.coord = engine.NewCoordinator(engine.Config{
		Store:    store,
		Query:    query,
		Results:  results,
		Notifier: notifier,
		Workers:  o.workers,
		Logger:   o.logger.Logger,
		Metrics:  o.metrics,
	})
	return f, nil
}

// Start brings up the coordinator and the worker pool. A Finder starts at
// most once; Start after Stop returns ErrStopped.
func (f *Finder) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case stateRunning:
		return ErrAlreadyStarted
	case stateStopped:
		return ErrStopped
	}

	f.coord.Start()
	f.state = stateRunning
	f.logger.LogStart(f.coord.Workers())
	return nil
}

// Stop cancels any in-flight pass, joins the coordinator and all workers,
// fires one final wake so a polling reader exits cleanly, and closes the
// wake-up descriptor. Idempotent.
func (f *Finder) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != stateRunning {
		return
	}
	f.state = stateStopped

	f.coord.Stop()
	if err := f.notifier.Close(); err != nil {
		f.logger.Warn("close notifier", "error", err)
	}
	f.logger.LogStop(f.store.Size())
}

// NotifyHandle returns the pollable wake-up descriptor. It becomes readable
// whenever a fresh snapshot was published; LoadResults drains it. Invalid
// after Stop.
func (f *Finder) NotifyHandle() int {
	return f.notifier.Fd()
}

// PushItem appends one item to staging. The bytes are copied. The item
// becomes visible to matching only after the next CommitItems.
func (f *Finder) PushItem(line []byte) error {
	return f.store.Push(line)
}

// CommitItems publishes all staged items and wakes the pipeline.
func (f *Finder) CommitItems() {
	f.store.Commit()
	f.coord.NotifyCommit()
	f.metrics.RecordCommit(f.store.Staged())
}

// ItemsSize returns the committed item count.
func (f *Finder) ItemsSize() uint64 {
	return f.store.Size()
}

// Item returns the bytes of item i, which must be below a size the caller
// observed via ItemsSize or a snapshot's items tick.
func (f *Finder) Item(i uint64) []byte {
	return f.store.At(i)
}

// ScanFeed feeds a raw byte chunk to the line scanner, pushing one item per
// complete line. It returns the number of items produced. The caller
// decides when to CommitItems.
func (f *Finder) ScanFeed(chunk []byte) (uint32, error) {
	n, err := f.scan.Feed(chunk, f.store.Push)
	f.metrics.RecordScan(len(chunk), n)
	f.logger.LogScanFeed(len(chunk), n, err)
	return n, err
}

// ScanEnd flushes a trailing unterminated line as one final item. It
// reports whether an item was produced.
func (f *Finder) ScanEnd() (bool, error) {
	return f.scan.Finalize(f.store.Push)
}

// SetQuery replaces the current query and wakes the pipeline. Stale passes
// are cancelled; their output is never published.
func (f *Finder) SetQuery(query string) {
	*f.query.WriteBuffer() = query
	f.query.Publish()
	f.coord.NotifyQuery()
}

// Query returns the most recently set query string. Callers highlighting
// visible rows use it together with matcher.MatchPositions.
func (f *Finder) Query() string {
	q, _ := f.query.Peek()
	return q
}

// LoadResults swaps the reader-visible snapshot with the latest published
// one and drains the wake-up descriptor. It reports whether the snapshot
// changed. Non-blocking; reader goroutine only.
func (f *Finder) LoadResults() bool {
	if err := f.notifier.Drain(); err != nil {
		f.logger.Warn("drain notifier", "error", err)
	}
	_, _, changed := f.results.Load()
	return changed
}

// ResultsLen returns the number of matches in the loaded snapshot.
func (f *Finder) ResultsLen() int {
	return len(f.results.ReadBuffer().Matches)
}

// Result returns row i of the loaded snapshot, 0 being the best match.
func (f *Finder) Result(i int) Result {
	m := f.results.ReadBuffer().Matches[i]
	return Result{
		Line:  f.store.At(uint64(m.Index)),
		Score: m.Score,
		Index: m.Index,
	}
}

// Processing reports whether the loaded snapshot lags the live inputs:
// true while its ticks trail the committed size or the query version.
func (f *Finder) Processing() bool {
	rb := f.results.ReadBuffer()
	return rb.ItemsTick != f.store.Size() || rb.QueryTick != f.query.WriteTick()
}
