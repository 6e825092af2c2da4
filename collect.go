package streams

import (
	"sync"

	collections "github.com/ilxqx/go-collections"
)

// stopOrErrMarker records a single worker's earliest Stop or Error observation,
// each carrying the input index it occurred at so the fallibility layer (4.L)
// can pick the global minimum-index marker across all workers.
type stopOrErrMarker struct {
	idx   int
	isErr bool
	err   error
	valid bool
}

// combineMarkers implements spec §4.H/§4.L: the winning marker is the one with
// the smallest index; if it is an Error marker the computation fails with that
// error, otherwise (no marker, or the smallest is a Stop) the result is
// truncated at that index with no error. Returns (truncateAt, err); truncateAt
// is -1 when nothing should be truncated.
func combineMarkers(markers []stopOrErrMarker) (truncateAt int, err error) {
	truncateAt = -1
	best := stopOrErrMarker{valid: false}
	for _, m := range markers {
		if !m.valid {
			continue
		}
		if !best.valid || m.idx < best.idx {
			best = m
		}
	}
	if !best.valid {
		return -1, nil
	}
	if best.isErr {
		return best.idx, best.err
	}
	return best.idx, nil
}

// Collect gathers every element produced by the pipeline into a slice.
// Ordered iterators (the default) return elements in input-index order via a
// k-way merge of per-worker sorted runs (4.H); Arbitrary iterators return
// elements in whatever order workers happened to append them (4.I). A
// fallible pipeline's minimum-index error is returned as err; a TakeWhile stop
// truncates the result with err == nil.
func Collect[S, T any](p ParIter[S, T]) ([]T, error) {
	threads, chunkSize := p.resolve(taskCollectOrReduce)

	if p.params.ordering == Arbitrary {
		return collectArbitrary(p, threads, chunkSize)
	}
	return collectOrdered(p, threads, chunkSize)
}

func collectOrdered[S, T any](p ParIter[S, T], threads, chunkSize int) ([]T, error) {
	runs := make([][]indexed[T], threads)
	markers := make([]stopOrErrMarker, threads)

	err := runParallel(p, threads, chunkSize, func(workerID int) func(int, Value[T]) bool {
		var local []indexed[T]
		return func(idx int, v Value[T]) bool {
			switch {
			case v.IsOne(), v.IsMany():
				for _, t := range v.Slice() {
					local = append(local, indexed[T]{Index: idx, Item: t})
				}
				runs[workerID] = local
				return false
			case v.IsNone():
				runs[workerID] = local
				return false
			case v.IsStop():
				runs[workerID] = local
				markers[workerID] = stopOrErrMarker{idx: idx, valid: true}
				return true
			default: // IsError
				runs[workerID] = local
				markers[workerID] = stopOrErrMarker{idx: idx, isErr: true, err: v.Err(), valid: true}
				return true
			}
		}
	})
	if err != nil {
		return nil, err
	}

	truncateAt, markerErr := combineMarkers(markers)
	if markerErr != nil {
		return nil, markerErr
	}
	return mergeOrderedRuns(runs, truncateAt), nil
}

func collectArbitrary[S, T any](p ParIter[S, T], threads, chunkSize int) ([]T, error) {
	var mu sync.Mutex
	var bag []T
	if n, ok := p.source.TryLen(); ok {
		bag = make([]T, 0, n)
	}
	markers := make([]stopOrErrMarker, threads)

	err := runParallel(p, threads, chunkSize, func(workerID int) func(int, Value[T]) bool {
		return func(idx int, v Value[T]) bool {
			switch {
			case v.IsOne(), v.IsMany():
				mu.Lock()
				bag = append(bag, v.Slice()...)
				mu.Unlock()
				return false
			case v.IsNone():
				return false
			case v.IsStop():
				markers[workerID] = stopOrErrMarker{idx: idx, valid: true}
				return true
			default:
				markers[workerID] = stopOrErrMarker{idx: idx, isErr: true, err: v.Err(), valid: true}
				return true
			}
		}
	})
	if err != nil {
		return nil, err
	}

	_, markerErr := combineMarkers(markers)
	if markerErr != nil {
		return nil, markerErr
	}
	return bag, nil
}

// ParCollector generalizes a Supplier/Accumulator/Finisher collector with a
// Combiner so worker-local accumulators can be merged after join, mirroring
// the Reducer's two-level fold (4.J) but for arbitrary accumulation shapes.
type ParCollector[T, A, R any] struct {
	Supplier    func() A
	Accumulator func(A, T) A
	Combiner    func(A, A) A
	Finisher    func(A) R
}

// CollectInto runs a ParCollector: each worker folds its produced elements
// into a private accumulator (Supplier + Accumulator), then worker
// accumulators are merged in worker-id order with Combiner and passed through
// Finisher. Combiner is expected to be associative, matching the Reducer's
// requirement on reduceFn (4.J): ordered iteration order is otherwise not
// meaningful here since worker-id order is not input order.
func CollectInto[S, T, A, R any](p ParIter[S, T], c ParCollector[T, A, R]) (R, error) {
	threads, chunkSize := p.resolve(taskCollectOrReduce)
	accs := make([]A, threads)
	for i := range accs {
		accs[i] = c.Supplier()
	}
	markers := make([]stopOrErrMarker, threads)

	err := runParallel(p, threads, chunkSize, func(workerID int) func(int, Value[T]) bool {
		acc := c.Supplier()
		return func(idx int, v Value[T]) bool {
			switch {
			case v.IsOne(), v.IsMany():
				for _, t := range v.Slice() {
					acc = c.Accumulator(acc, t)
				}
				accs[workerID] = acc
				return false
			case v.IsNone():
				accs[workerID] = acc
				return false
			case v.IsStop():
				accs[workerID] = acc
				markers[workerID] = stopOrErrMarker{idx: idx, valid: true}
				return true
			default:
				accs[workerID] = acc
				markers[workerID] = stopOrErrMarker{idx: idx, isErr: true, err: v.Err(), valid: true}
				return true
			}
		}
	})
	var zero R
	if err != nil {
		return zero, err
	}
	if _, markerErr := combineMarkers(markers); markerErr != nil {
		return zero, markerErr
	}

	result := c.Supplier()
	for _, a := range accs {
		result = c.Combiner(result, a)
	}
	return c.Finisher(result), nil
}

// ParCollectToSet collects the pipeline's output into a collections.Set, composing
// Collect with the teacher's existing ToHashSet helper (collections.go).
func ParCollectToSet[S, T comparable](p ParIter[S, T]) (collections.Set[T], error) {
	items, err := Collect(p)
	if err != nil {
		return nil, err
	}
	return ToHashSet(FromSlice(items)), nil
}

// ParCollectToList collects the pipeline's output into a collections.List,
// composing Collect with the teacher's existing ToArrayList helper.
func ParCollectToList[S, T any](p ParIter[S, T]) (collections.List[T], error) {
	items, err := Collect(p)
	if err != nil {
		return nil, err
	}
	return ToArrayList(FromSlice(items)), nil
}

// ParCollectToMap collects the pipeline's output into a collections.Map by
// applying keyFn/valFn to each element, composing Collect with the teacher's
// existing ToHashMapC helper.
func ParCollectToMap[S, T any, K comparable, V any](p ParIter[S, T], keyFn func(T) K, valFn func(T) V) (collections.Map[K, V], error) {
	items, err := Collect(p)
	if err != nil {
		return nil, err
	}
	return ToHashMapC(FromSlice(items), keyFn, valFn), nil
}
