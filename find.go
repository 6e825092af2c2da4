package streams

import "sync"

// foundMarker records a worker's earliest produced element alongside its
// input index, so First/Find can pick the global minimum-index match the same
// way Collect picks the global minimum-index Stop/Error (4.K).
type foundMarker[T any] struct {
	idx   int
	item  T
	valid bool
}

// First returns the first element the pipeline would produce. In Ordered mode
// this is the element at the smallest input index among all produced
// elements, matching sequential semantics; in Arbitrary mode it is whichever
// element a worker happens to produce first, with no determinism guarantee
// (see DESIGN.md Open Question resolutions).
func First[S, T any](p ParIter[S, T]) (result T, found bool, err error) {
	return Find(p, func(T) bool { return true })
}

// Find returns the first element matching pred. Ordered mode picks the
// minimum-index match across all workers (or the minimum-index error/stop
// marker, if one precedes every match); Arbitrary mode races workers and
// calls SkipToEnd as soon as any one of them matches.
func Find[S, T any](p ParIter[S, T], pred func(T) bool) (result T, found bool, err error) {
	p = p.Filter(pred)
	threads, chunkSize := p.resolve(taskEarlyReturn)

	if p.params.ordering == Arbitrary {
		return findArbitrary(p, threads, chunkSize)
	}
	return findOrdered(p, threads, chunkSize)
}

func findOrdered[S, T any](p ParIter[S, T], threads, chunkSize int) (T, bool, error) {
	founds := make([]foundMarker[T], threads)
	markers := make([]stopOrErrMarker, threads)

	err := runParallel(p, threads, chunkSize, func(workerID int) func(int, Value[T]) bool {
		return func(idx int, v Value[T]) bool {
			switch {
			case v.IsOne():
				founds[workerID] = foundMarker[T]{idx: idx, item: v.One(), valid: true}
				return true // this worker's indices only increase from here
			case v.IsMany():
				founds[workerID] = foundMarker[T]{idx: idx, item: v.Slice()[0], valid: true}
				return true
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
	var zero T
	if err != nil {
		return zero, false, err
	}

	bestIdx := -1
	var bestErr error
	isErr := false
	haveWinner := false
	var winnerItem T
	winnerIsFound := false

	consider := func(idx int, isErrMarker bool, e error) {
		if haveWinner && idx >= bestIdx {
			return
		}
		haveWinner, bestIdx, isErr, bestErr, winnerIsFound = true, idx, isErrMarker, e, false
	}

	for _, f := range founds {
		if !f.valid {
			continue
		}
		if !haveWinner || f.idx < bestIdx {
			haveWinner, bestIdx, winnerItem, winnerIsFound, isErr = true, f.idx, f.item, true, false
		}
	}
	for _, m := range markers {
		if !m.valid {
			continue
		}
		consider(m.idx, m.isErr, m.err)
	}

	if !haveWinner {
		return zero, false, nil
	}
	if isErr {
		return zero, false, bestErr
	}
	if !winnerIsFound {
		return zero, false, nil
	}
	return winnerItem, true, nil
}

func findArbitrary[S, T any](p ParIter[S, T], threads, chunkSize int) (T, bool, error) {
	var mu sync.Mutex
	var result T
	found := false
	var firstErr error

	err := runParallel(p, threads, chunkSize, func(workerID int) func(int, Value[T]) bool {
		return func(idx int, v Value[T]) bool {
			switch {
			case v.IsOne(), v.IsMany():
				mu.Lock()
				if !found {
					found = true
					result = v.Slice()[0]
				}
				mu.Unlock()
				return true
			case v.IsNone():
				return false
			case v.IsStop():
				return true
			default:
				mu.Lock()
				if firstErr == nil {
					firstErr = v.Err()
				}
				mu.Unlock()
				return true
			}
		}
	})
	if err != nil {
		return result, false, err
	}
	if firstErr != nil {
		var zero T
		return zero, false, firstErr
	}
	return result, found, nil
}

// Any reports whether any element matches pred, short-circuiting as soon as
// one worker finds a match (4.K "any").
func Any[S, T any](p ParIter[S, T], pred func(T) bool) (bool, error) {
	q := p.ArbitraryIter()
	_, found, err := Find(q, pred)
	return found, err
}

// ForEach executes action on every produced element. Side effects from
// workers past a Stop/Error index cannot be retroactively undone (they are
// genuine side effects, not buffered results), so ForEach only guarantees
// that action is called at most once per produced element and that the
// returned error is the minimum-index error of a fallible pipeline, not that
// action was withheld for elements beyond the stop/error index.
func ForEach[S, T any](p ParIter[S, T], action func(T)) error {
	threads, chunkSize := p.resolve(taskCollectOrReduce)
	markers := make([]stopOrErrMarker, threads)

	err := runParallel(p, threads, chunkSize, func(workerID int) func(int, Value[T]) bool {
		return func(idx int, v Value[T]) bool {
			switch {
			case v.IsOne(), v.IsMany():
				for _, t := range v.Slice() {
					action(t)
				}
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
		return err
	}
	_, markerErr := combineMarkers(markers)
	return markerErr
}
