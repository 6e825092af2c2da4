package streams

import "golang.org/x/sync/errgroup"

// Runner abstracts the worker pool a computation spawns into: Go schedules one
// worker's function, Wait blocks until every scheduled function has returned and
// yields the first non-nil error among them. Implementations must guarantee
// every Go'd function is eventually executed and that Wait does not return
// before all of them complete — the same contract the original engine's scoped
// thread scope makes.
//
// Runner itself never recovers panics: the functions runParallel passes to Go
// already convert a worker panic into a returned error before Runner ever sees
// it, so a custom Runner only has to propagate errors, not catch panics.
//
// The default Runner is backed by golang.org/x/sync/errgroup. Callers with their
// own worker pool can supply one via ParIter.WithRunner.
type Runner interface {
	Go(func() error)
	Wait() error
}

// errgroupRunner is the default Runner, a thin adapter over errgroup.Group.
type errgroupRunner struct {
	g *errgroup.Group
}

func newErrgroupRunner() *errgroupRunner {
	return &errgroupRunner{g: &errgroup.Group{}}
}

func (r *errgroupRunner) Go(fn func() error) {
	r.g.Go(fn)
}

func (r *errgroupRunner) Wait() error {
	return r.g.Wait()
}
