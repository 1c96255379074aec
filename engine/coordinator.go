package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/fuzzgo/itemstore"
	"github.com/hupe1980/fuzzgo/notify"
)

// Config wires a Coordinator to its collaborators. Store, Query, Results
// and Notifier are required; the rest default sensibly.
type Config struct {
	Store    *itemstore.Store
	Query    *TxValue[string]
	Results  *TxValue[Results]
	Notifier notify.Notifier

	// Workers is the scoring worker count; 0 means DefaultWorkers().
	Workers int

	Logger  *slog.Logger
	Metrics MetricsRecorder
}

// Coordinator runs the event loop on its own goroutine. It is the only
// goroutine that mutates pass-control state: it dispatches passes, cancels
// stale ones, merges finished shards, publishes snapshots, and fires the
// wake-up notifier.
type Coordinator struct {
	store    *itemstore.Store
	query    *TxValue[string]
	results  *TxValue[Results]
	notifier notify.Notifier
	logger   *slog.Logger
	metrics  MetricsRecorder

	events  *events
	pool    *pool
	wg      sync.WaitGroup
	stopped atomic.Bool

	// Loop-goroutine state; never touched from outside run().
	inFlight      *pass
	passStart     time.Time
	curQuery      string
	curQueryTick  uint64
	lastItemsTick uint64
	lastQueryTick uint64
	published     bool
}

// NewCoordinator creates a Coordinator; call Start to bring up the loop and
// the worker pool.
func NewCoordinator(cfg Config) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NoopMetricsRecorder{}
	}
	ev := newEvents()
	return &Coordinator{
		store:    cfg.Store,
		query:    cfg.Query,
		results:  cfg.Results,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		events:   ev,
		pool:     newPool(cfg.Workers, cfg.Store, ev),
	}
}

// Workers returns the size of the worker pool.
func (c *Coordinator) Workers() int {
	return c.pool.size()
}

// InternalFailures reports the number of contained worker panics. Always
// zero unless there is a bug in the scoring path.
func (c *Coordinator) InternalFailures() uint64 {
	return c.pool.failures.Load()
}

// Start launches the worker pool and the event loop.
func (c *Coordinator) Start() {
	c.pool.start()
	c.wg.Add(1)
	go c.run()
	c.logger.Debug("coordinator started", "workers", c.pool.size())
}

// Stop cancels any in-flight pass, drains the loop and joins all workers.
// Idempotent.
func (c *Coordinator) Stop() {
	if !c.stopped.CompareAndSwap(false, true) {
		return
	}
	c.events.post(evStop)
	c.wg.Wait()
	c.pool.stop()
	c.logger.Debug("coordinator stopped")
}

// NotifyCommit tells the loop that the producer committed more items.
func (c *Coordinator) NotifyCommit() {
	c.events.post(evCommit)
}

// NotifyQuery tells the loop that a new query was published.
func (c *Coordinator) NotifyQuery() {
	c.events.post(evQuery)
}

func (c *Coordinator) run() {
	defer c.wg.Done()
	for {
		ev := c.events.wait()
		if ev&evStop != 0 {
			c.cancelInFlight()
			return
		}
		if ev&evQuery != 0 {
			c.onQuery()
		}
		if ev&evCommit != 0 {
			c.onCommit()
		}
		if ev&evDone != 0 {
			c.onDone()
		}
	}
}

// onQuery loads the freshest query. Any in-flight pass scores a stale
// version, so it is always cancelled and restarted.
func (c *Coordinator) onQuery() {
	q, tick, changed := c.query.Load()
	if !changed {
		return
	}
	c.curQuery, c.curQueryTick = *q, tick
	c.cancelInFlight()
	c.dispatch()
}

// onCommit restarts the in-flight pass only when the committed size moved
// past the size it was dispatched for; the query version is kept.
func (c *Coordinator) onCommit() {
	if p := c.inFlight; p != nil {
		if c.store.Size() > p.itemsTick {
			c.cancelInFlight()
			c.dispatch()
		}
		return
	}
	c.dispatch()
}

// onDone merges and publishes the in-flight pass once every worker has
// reported in. Stale done events from cancelled passes fall through.
func (c *Coordinator) onDone() {
	p := c.inFlight
	if p == nil || p.outstanding.Load() != 0 || p.cancel.Load() {
		return
	}
	c.inFlight = nil

	wb := c.results.WriteBuffer()
	wb.Matches = mergeShards(wb.Matches[:0], p.shards)
	wb.ItemsTick = p.itemsTick
	wb.QueryTick = p.queryTick
	n := len(wb.Matches)
	c.publish(wb)

	c.metrics.RecordPass(time.Since(c.passStart), p.itemsTick, n)
	c.logger.Debug("pass finished",
		"items", p.itemsTick,
		"query_tick", p.queryTick,
		"matches", n,
	)
}

// dispatch starts a pass for the current (size, query, tick), short-cutting
// the empty query to an identity snapshot. Nothing is dispatched when the
// same state was already published, or when there are no items to score.
func (c *Coordinator) dispatch() {
	size := c.store.Size()
	if c.published && size == c.lastItemsTick && c.curQueryTick == c.lastQueryTick {
		return
	}

	if len(c.curQuery) == 0 {
		c.publishIdentity(size)
		return
	}
	if size == 0 {
		return
	}

	p := &pass{
		itemsTick: size,
		query:     []byte(c.curQuery),
		queryTick: c.curQueryTick,
	}
	c.inFlight = p
	c.passStart = time.Now()
	c.pool.dispatch(p)
	c.logger.Debug("pass dispatched", "items", size, "query_tick", c.curQueryTick)
}

// publishIdentity writes the identity ranking for the empty query: all
// committed items in input order with score 0.
func (c *Coordinator) publishIdentity(size uint64) {
	wb := c.results.WriteBuffer()
	wb.Matches = wb.Matches[:0]
	for i := uint64(0); i < size; i++ {
		wb.Matches = append(wb.Matches, Match{Index: uint32(i)})
	}
	wb.ItemsTick = size
	wb.QueryTick = c.curQueryTick
	c.publish(wb)
}

// publish flips the snapshot buffer and fires the wake-up. The swap
// happens-before the fire, which happens-before the reader's LoadResults.
func (c *Coordinator) publish(wb *Results) {
	n := len(wb.Matches)
	c.lastItemsTick = wb.ItemsTick
	c.lastQueryTick = wb.QueryTick
	c.published = true
	c.results.Publish()
	if err := c.notifier.Fire(); err != nil {
		c.logger.Warn("wake-up fire failed", "error", err)
	}
	c.metrics.RecordPublish(n)
}

func (c *Coordinator) cancelInFlight() {
	p := c.inFlight
	if p == nil {
		return
	}
	p.cancel.Store(true)
	c.inFlight = nil
	c.metrics.RecordPassCanceled()
	c.logger.Debug("pass cancelled", "items", p.itemsTick, "query_tick", p.queryTick)
}
