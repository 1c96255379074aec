package engine

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/fuzzgo/itemstore"
	"github.com/hupe1980/fuzzgo/matcher"
)

const (
	// MaxWorkers caps the default worker count.
	MaxWorkers = 8

	// cancelCheckInterval is how many items a worker scores between looks
	// at the pass's cancel flag.
	cancelCheckInterval = 512
)

// DefaultWorkers returns the default worker count: hardware parallelism
// capped at MaxWorkers.
func DefaultWorkers() int {
	return min(runtime.GOMAXPROCS(0), MaxWorkers)
}

// pool manages the fixed set of scoring workers. Workers are long-lived:
// they park on their job channel between passes and keep their scratch
// buffers and DP rows across passes, so steady-state scoring does not
// allocate.
type pool struct {
	workers []*worker
	wg      sync.WaitGroup

	// failures counts worker panics. Scoring is total, so this staying at
	// zero is an invariant; a non-zero count means a contained bug.
	failures atomic.Uint64
}

type worker struct {
	id       int
	nworkers int
	jobs     chan *pass
	store    *itemstore.Store
	events   *events
	failures *atomic.Uint64

	scorer  matcher.Scorer
	scratch []Match
}

func newPool(n int, store *itemstore.Store, ev *events) *pool {
	if n <= 0 {
		n = DefaultWorkers()
	}
	p := &pool{workers: make([]*worker, n)}
	for i := range p.workers {
		p.workers[i] = &worker{
			id:       i,
			nworkers: n,
			jobs:     make(chan *pass, 1),
			store:    store,
			events:   ev,
			failures: &p.failures,
		}
	}
	return p
}

func (p *pool) size() int {
	return len(p.workers)
}

func (p *pool) start() {
	p.wg.Add(len(p.workers))
	for _, w := range p.workers {
		go w.run(&p.wg)
	}
}

// dispatch hands ps to every worker. The coordinator cancels before
// re-dispatching, so a send can only wait on a worker that has not yet
// picked up a cancelled pass; workers always drain, so dispatch cannot
// deadlock.
func (p *pool) dispatch(ps *pass) {
	ps.outstanding.Store(int32(len(p.workers)))
	ps.shards = make([][]Match, len(p.workers))
	for _, w := range p.workers {
		w.jobs <- ps
	}
}

// stop closes the job channels and joins all workers. Any undelivered pass
// must have been cancelled first.
func (p *pool) stop() {
	for _, w := range p.workers {
		close(w.jobs)
	}
	p.wg.Wait()
}

func (w *worker) run(wg *sync.WaitGroup) {
	defer wg.Done()
	for ps := range w.jobs {
		w.runPass(ps)
	}
}

// runPass scores the worker's shard, sorts it, and publishes it to the
// pass. The last worker to finish posts the done event. On cancellation the
// scratch is abandoned unsorted and nothing is published.
//
// A panic is contained here: the pass is cancelled so it can never publish,
// and the next commit or query event re-dispatches.
func (w *worker) runPass(ps *pass) {
	defer func() {
		if r := recover(); r != nil {
			w.failures.Add(1)
			ps.cancel.Store(true)
			ps.outstanding.Add(-1)
		}
	}()

	lo, hi := shardRange(ps.itemsTick, w.id, w.nworkers)

	scratch := w.scratch[:0]
	for i := lo; i < hi; i++ {
		if (i-lo)%cancelCheckInterval == 0 && ps.cancel.Load() {
			w.scratch = scratch
			ps.outstanding.Add(-1)
			return
		}
		score := w.scorer.Score(ps.query, w.store.At(i))
		if score != matcher.ScoreMin {
			scratch = append(scratch, Match{Index: uint32(i), Score: score})
		}
	}
	w.scratch = scratch

	slices.SortFunc(scratch, compareMatches)
	ps.shards[w.id] = scratch

	if ps.outstanding.Add(-1) == 0 && !ps.cancel.Load() {
		w.events.post(evDone)
	}
}
