package streams

import (
	"context"
	"fmt"
	"iter"

	clone "github.com/huandu/go-clone/generic"
)

// stageFunc is the materialized per-worker pipeline closure: given an input
// index and item, it produces the uniform Value algebra output. The index
// parameter lets Enumerate and the ordered collectors key results without the
// algebra itself needing to carry positional information.
type stageFunc[S, T any] func(index int, item S) Value[T]

// ParIter is a parallel iterator over a source of S, currently producing
// elements of T after zero or more composed transformations. S is fixed for the
// lifetime of one pipeline (it names the original source's element type); T
// changes as Map/ParFlatMap/FilterMap/MapWhileOk are composed, which is why those
// four operators are free functions rather than methods — Go does not allow a
// generic method to introduce a type parameter the receiver doesn't already
// bind.
type ParIter[S, T any] struct {
	source Source[S]
	build  func() stageFunc[S, T]
	params Params
	runner Runner
	ctx    context.Context
}

func identityBuild[T any]() stageFunc[T, T] {
	return func(_ int, item T) Value[T] { return One(item) }
}

// ParFromSlice creates a ParIter borrowing the given slice; the slice must not be
// mutated concurrently with the computation.
func ParFromSlice[T any](items []T) ParIter[T, T] {
	return ParIter[T, T]{
		source: newSliceSource(items),
		build:  identityBuild[T],
		params: defaultParams(),
	}
}

// FromRange creates a ParIter over the integers [start, end).
func FromRange(start, end int) ParIter[int, int] {
	if end < start {
		end = start
	}
	items := make([]int, end-start)
	for i := range items {
		items[i] = start + i
	}
	return ParFromSlice(items)
}

// FromSeq lifts a sequential iter.Seq[T] into a ParIter. Because the length of
// an arbitrary iter.Seq is not known in advance, this is the unknown-length
// path: it is backed by a mutex-guarded sequential puller rather than a
// lock-free random-access source.
func FromSeq[T any](seq iter.Seq[T]) ParIter[T, T] {
	return ParIter[T, T]{
		source: newSeqSource(seq),
		build:  identityBuild[T],
		params: defaultParams(),
	}
}

// DrainSlice drains *items into an owning ParIter, replacing *items with an
// empty slice of the same underlying array length 0 so the caller cannot
// observe a half-drained slice once the computation has started.
func DrainSlice[T any](items *[]T) ParIter[T, T] {
	drained := *items
	*items = (*items)[:0]
	return ParFromSlice(drained)
}

// --- parameter setters ---

// NumThreads requests a worker count. 0 (the zero value) means Auto.
func (p ParIter[S, T]) NumThreads(n int) ParIter[S, T] {
	p.params.numThreads = n
	return p
}

// ChunkSizePolicy sets the chunk-size policy (Auto, Min, or Exact).
func (p ParIter[S, T]) ChunkSizePolicy(c ChunkSize) ParIter[S, T] {
	p.params.chunkSize = c
	return p
}

// IterationOrder sets Ordered or Arbitrary explicitly.
func (p ParIter[S, T]) IterationOrder(o Ordering) ParIter[S, T] {
	p.params.ordering = o
	return p
}

// OrderedIter requests input-order-preserving terminals. Default.
func (p ParIter[S, T]) OrderedIter() ParIter[S, T] {
	p.params.ordering = Ordered
	return p
}

// ArbitraryIter requests terminals with no ordering guarantee.
func (p ParIter[S, T]) ArbitraryIter() ParIter[S, T] {
	p.params.ordering = Arbitrary
	return p
}

// WithRunner overrides the default errgroup-backed worker pool.
func (p ParIter[S, T]) WithRunner(r Runner) ParIter[S, T] {
	p.runner = r
	return p
}

// WithContext attaches a context whose cancellation cooperatively stops the
// computation: a monitor goroutine calls SkipToEnd on ctx.Done, and the
// terminal's returned error becomes ctx.Err() if the computation was cut short
// this way.
func (p ParIter[S, T]) WithContext(ctx context.Context) ParIter[S, T] {
	p.ctx = ctx
	return p
}

// --- same-T transformations (methods) ---

// Filter keeps only elements matching pred.
func (p ParIter[S, T]) Filter(pred func(T) bool) ParIter[S, T] {
	prevBuild := p.build
	p.build = func() stageFunc[S, T] {
		stage := prevBuild()
		return func(idx int, s S) Value[T] {
			return filterValue(stage(idx, s), pred)
		}
	}
	return p
}

// TakeWhile passes elements through until pred first fails, after which this
// and all subsequent elements (from this worker's perspective) become Stop.
// The failing item's input index becomes a candidate stop index for the
// ordered collector.
func (p ParIter[S, T]) TakeWhile(pred func(T) bool) ParIter[S, T] {
	prevBuild := p.build
	p.build = func() stageFunc[S, T] {
		stage := prevBuild()
		stopped := false
		return func(idx int, s S) Value[T] {
			return takeWhileValue(stage(idx, s), pred, &stopped)
		}
	}
	return p
}

// Inspect calls f on every produced element (including each element of a Many
// burst) without changing the pipeline's output.
func (p ParIter[S, T]) Inspect(f func(T)) ParIter[S, T] {
	prevBuild := p.build
	p.build = func() stageFunc[S, T] {
		stage := prevBuild()
		return func(idx int, s S) Value[T] {
			v := stage(idx, s)
			for _, t := range v.Slice() {
				f(t)
			}
			return v
		}
	}
	return p
}

// Copied is the identity transformation. In Go every value already travels by
// value (there is no borrow-vs-owned distinction like Rust's Iterator<Item=&T>
// vs Iterator<Item=T>), so Copied exists purely for API parity with the
// conceptual surface and never allocates.
func (p ParIter[S, T]) Copied() ParIter[S, T] {
	return p
}

// Cloned deep-clones every produced element via github.com/huandu/go-clone,
// guaranteeing no element aliases another goroutine's copy of the same
// underlying data. Use this when T contains pointers/slices/maps that must not
// be shared between the source and the collected result.
func (p ParIter[S, T]) Cloned() ParIter[S, T] {
	prevBuild := p.build
	p.build = func() stageFunc[S, T] {
		stage := prevBuild()
		return func(idx int, s S) Value[T] {
			return mapValue(stage(idx, s), func(t T) T { return clone.Clone(t) })
		}
	}
	return p
}

// Enumerate pairs each produced element with its input index, reusing the
// existing Pair tuple type rather than introducing a dedicated pair type.
func (p ParIter[S, T]) Enumerate() ParIter[S, Pair[int, T]] {
	prevBuild := p.build
	return ParIter[S, Pair[int, T]]{
		source: p.source,
		build: func() stageFunc[S, Pair[int, T]] {
			stage := prevBuild()
			return func(idx int, s S) Value[Pair[int, T]] {
				return mapValue(stage(idx, s), func(t T) Pair[int, T] {
					return Pair[int, T]{First: idx, Second: t}
				})
			}
		},
		params: p.params,
		runner: p.runner,
		ctx:    p.ctx,
	}
}

// --- type-changing transformations (free functions) ---

// Map transforms each element with f.
func Map[S, T, U any](p ParIter[S, T], f func(T) U) ParIter[S, U] {
	prevBuild := p.build
	return ParIter[S, U]{
		source: p.source,
		build: func() stageFunc[S, U] {
			stage := prevBuild()
			return func(idx int, s S) Value[U] {
				return mapValue(stage(idx, s), f)
			}
		},
		params: p.params,
		runner: p.runner,
		ctx:    p.ctx,
	}
}

// ParFlatMap expands each element into zero or more U via f.
func ParFlatMap[S, T, U any](p ParIter[S, T], f func(T) []U) ParIter[S, U] {
	prevBuild := p.build
	return ParIter[S, U]{
		source: p.source,
		build: func() stageFunc[S, U] {
			stage := prevBuild()
			return func(idx int, s S) Value[U] {
				return flatMapValue(stage(idx, s), f)
			}
		},
		params: p.params,
		runner: p.runner,
		ctx:    p.ctx,
	}
}

// FilterMap transforms and filters in one step: f returns (value, false) to
// drop an element.
func FilterMap[S, T, U any](p ParIter[S, T], f func(T) (U, bool)) ParIter[S, U] {
	prevBuild := p.build
	return ParIter[S, U]{
		source: p.source,
		build: func() stageFunc[S, U] {
			stage := prevBuild()
			return func(idx int, s S) Value[U] {
				return filterMapValue(stage(idx, s), f)
			}
		},
		params: p.params,
		runner: p.runner,
		ctx:    p.ctx,
	}
}

// MapWhileOk transforms each element with a fallible function. The first
// input index at which f returns a non-nil error becomes a candidate error
// index for the fallibility layer; ordered terminals surface the
// minimum-index error across all workers.
func MapWhileOk[S, T, U any](p ParIter[S, T], f func(T) (U, error)) ParIter[S, U] {
	prevBuild := p.build
	return ParIter[S, U]{
		source: p.source,
		build: func() stageFunc[S, U] {
			stage := prevBuild()
			return func(idx int, s S) Value[U] {
				return mapWhileOkValue(stage(idx, s), f)
			}
		},
		params: p.params,
		runner: p.runner,
		ctx:    p.ctx,
	}
}

// Chain concatenates two pre-transformation parallel iterators of the same
// element type into one. Restricted to iterators that have not yet had any
// Map/Filter/etc. applied (see DESIGN.md): it materializes both underlying
// sources and builds a fresh combined slice source, rather than threading two
// independent pipelines through one executor.
func Chain[T any](p, other ParIter[T, T]) ParIter[T, T] {
	a := drainAll[T](p.source)
	b := drainAll[T](other.source)
	combined := make([]T, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	return ParIter[T, T]{
		source: newSliceSource(combined),
		build:  identityBuild[T],
		params: p.params,
	}
}

// drainAll sequentially pulls every remaining item from src. Only used by
// Chain, before any worker has been spawned, so single-threaded draining is
// safe and keeps the combined source's indices dense.
func drainAll[T any](src Source[T]) []T {
	var out []T
	for {
		_, items, ok := src.PullChunk(4096)
		if !ok {
			break
		}
		out = append(out, items...)
	}
	return out
}

// resolve computes this pipeline's effective (threads, chunkSize) for the
// given task kind, consulting the source's known length when available.
func (p ParIter[S, T]) resolve(k taskKind) (threads, chunkSize int) {
	inputLen := -1
	if n, ok := p.source.TryLen(); ok {
		inputLen = n
	}
	return p.params.resolve(inputLen, k)
}

// runParallel drives the worker loop (spec §4.G): it spawns up to `threads`
// workers via the configured Runner (or the default errgroup-backed one),
// spawning no further worker once the source reports a known remaining length
// of zero, so an empty source spawns none. Each worker has its own chunk puller
// and its own materialized pipeline closure (one call to build() per worker,
// giving stateful operators like TakeWhile private state). For every pipeline
// output Value (a Many burst is handed over as one Value carrying its parent's
// input index), it calls sinkFactory's per-worker closure; when that closure
// reports stop, the worker calls SkipToEnd and exits. If ctx is set, a monitor goroutine calls SkipToEnd on
// cancellation.
func runParallel[S, T any](p ParIter[S, T], threads, chunkSize int, sinkFactory func(workerID int) func(idx int, v Value[T]) (stop bool)) error {
	runner := p.runner
	if runner == nil {
		runner = newErrgroupRunner()
	}

	if p.ctx != nil {
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-p.ctx.Done():
				p.source.SkipToEnd()
			case <-done:
			}
		}()
	}

	for w := 0; w < threads; w++ {
		if n, ok := p.source.TryLen(); ok && n == 0 {
			break
		}
		workerID := w
		runner.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					p.source.SkipToEnd()
					err = fmt.Errorf("streams: worker %d panicked: %v", workerID, r)
				}
			}()
			stage := p.build()
			puller := newChunkPuller[S](p.source, chunkSize)
			sink := sinkFactory(workerID)
			for {
				idx, item, ok := puller.next()
				if !ok {
					return nil
				}
				v := stage(idx, item)
				if sink(idx, v) {
					p.source.SkipToEnd()
					return nil
				}
			}
		})
	}

	err := runner.Wait()
	if err == nil && p.ctx != nil {
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		default:
		}
	}
	return err
}
