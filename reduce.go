package streams

import (
	"cmp"

	clone "github.com/huandu/go-clone/generic"
)

// Reduce folds the pipeline's output with reduceFn, which MUST be associative;
// it need not be commutative, but because chunk ordering across workers is
// non-deterministic, callers requesting a deterministic result for a
// non-commutative reduceFn MUST call NumThreads(1) (4.J). found is false only
// when the pipeline produced no elements at all.
func Reduce[S, T any](p ParIter[S, T], reduceFn func(T, T) T) (result T, found bool, err error) {
	threads, chunkSize := p.resolve(taskCollectOrReduce)

	type localResult struct {
		acc   T
		found bool
	}
	locals := make([]localResult, threads)
	markers := make([]stopOrErrMarker, threads)

	runErr := runParallel(p, threads, chunkSize, func(workerID int) func(int, Value[T]) bool {
		var acc T
		var has bool
		return func(idx int, v Value[T]) bool {
			switch {
			case v.IsOne(), v.IsMany():
				for _, t := range v.Slice() {
					if !has {
						acc, has = t, true
					} else {
						acc = reduceFn(acc, t)
					}
				}
				locals[workerID] = localResult{acc: acc, found: has}
				return false
			case v.IsNone():
				locals[workerID] = localResult{acc: acc, found: has}
				return false
			case v.IsStop():
				locals[workerID] = localResult{acc: acc, found: has}
				markers[workerID] = stopOrErrMarker{idx: idx, valid: true}
				return true
			default:
				locals[workerID] = localResult{acc: acc, found: has}
				markers[workerID] = stopOrErrMarker{idx: idx, isErr: true, err: v.Err(), valid: true}
				return true
			}
		}
	})
	var zero T
	if runErr != nil {
		return zero, false, runErr
	}
	if _, markerErr := combineMarkers(markers); markerErr != nil {
		return zero, false, markerErr
	}

	for _, l := range locals {
		if !l.found {
			continue
		}
		if !found {
			result, found = l.acc, true
		} else {
			result = reduceFn(result, l.acc)
		}
	}
	return result, found, nil
}

// Fold generalizes Reduce with an explicit identity: each worker starts from a
// deep clone of identity (via github.com/huandu/go-clone) so a
// pointer/slice/map-shaped accumulator is never aliased across workers, folds
// with accumFn, and worker results are combined with combineFn, which MUST be
// associative in the same sense as Reduce's reduceFn.
func Fold[S, T, A any](p ParIter[S, T], identity A, accumFn func(A, T) A, combineFn func(A, A) A) (A, error) {
	threads, chunkSize := p.resolve(taskCollectOrReduce)
	locals := make([]A, threads)
	for i := range locals {
		locals[i] = clone.Clone(identity)
	}
	markers := make([]stopOrErrMarker, threads)

	err := runParallel(p, threads, chunkSize, func(workerID int) func(int, Value[T]) bool {
		acc := clone.Clone(identity)
		return func(idx int, v Value[T]) bool {
			switch {
			case v.IsOne(), v.IsMany():
				for _, t := range v.Slice() {
					acc = accumFn(acc, t)
				}
				locals[workerID] = acc
				return false
			case v.IsNone():
				locals[workerID] = acc
				return false
			case v.IsStop():
				locals[workerID] = acc
				markers[workerID] = stopOrErrMarker{idx: idx, valid: true}
				return true
			default:
				locals[workerID] = acc
				markers[workerID] = stopOrErrMarker{idx: idx, isErr: true, err: v.Err(), valid: true}
				return true
			}
		}
	})
	var zero A
	if err != nil {
		return zero, err
	}
	if _, markerErr := combineMarkers(markers); markerErr != nil {
		return zero, markerErr
	}

	result := clone.Clone(identity)
	for _, l := range locals {
		result = combineFn(result, l)
	}
	return result, nil
}

// ParSum reduces a numeric pipeline by addition.
func ParSum[S, T Numeric](p ParIter[S, T]) (T, error) {
	result, _, err := Reduce(p, func(a, b T) T { return a + b })
	return result, err
}

// Count returns the number of elements the pipeline would produce. It is
// evaluated as an Arbitrary reduction internally since order never affects a
// count; callers on a fallible pipeline still get the minimum-index error in
// Ordered mode because Count runs the full sink/marker machinery.
func Count[S, T any](p ParIter[S, T]) (int, error) {
	threads, chunkSize := p.resolve(taskCollectOrReduce)
	counts := make([]int, threads)
	markers := make([]stopOrErrMarker, threads)

	err := runParallel(p, threads, chunkSize, func(workerID int) func(int, Value[T]) bool {
		n := 0
		return func(idx int, v Value[T]) bool {
			switch {
			case v.IsOne():
				n++
				counts[workerID] = n
				return false
			case v.IsMany():
				n += len(v.Slice())
				counts[workerID] = n
				return false
			case v.IsNone():
				counts[workerID] = n
				return false
			case v.IsStop():
				counts[workerID] = n
				markers[workerID] = stopOrErrMarker{idx: idx, valid: true}
				return true
			default:
				counts[workerID] = n
				markers[workerID] = stopOrErrMarker{idx: idx, isErr: true, err: v.Err(), valid: true}
				return true
			}
		}
	})
	if err != nil {
		return 0, err
	}
	if _, markerErr := combineMarkers(markers); markerErr != nil {
		return 0, markerErr
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	return total, nil
}

// Min returns the smallest element by natural order.
func Min[S, T cmp.Ordered](p ParIter[S, T]) (T, bool, error) {
	return Reduce(p, func(a, b T) T {
		if b < a {
			return b
		}
		return a
	})
}

// Max returns the largest element by natural order.
func Max[S, T cmp.Ordered](p ParIter[S, T]) (T, bool, error) {
	return Reduce(p, func(a, b T) T {
		if b > a {
			return b
		}
		return a
	})
}

// ParMinBy returns the smallest element according to compare (negative when a < b).
func ParMinBy[S, T any](p ParIter[S, T], compare func(a, b T) int) (T, bool, error) {
	return Reduce(p, func(a, b T) T {
		if compare(b, a) < 0 {
			return b
		}
		return a
	})
}

// ParMaxBy returns the largest element according to compare (negative when a < b).
func ParMaxBy[S, T any](p ParIter[S, T], compare func(a, b T) int) (T, bool, error) {
	return Reduce(p, func(a, b T) T {
		if compare(b, a) > 0 {
			return b
		}
		return a
	})
}

// MinByKey returns the element whose key is smallest.
func MinByKey[S, T any, K cmp.Ordered](p ParIter[S, T], key func(T) K) (T, bool, error) {
	return Reduce(p, func(a, b T) T {
		if key(b) < key(a) {
			return b
		}
		return a
	})
}

// MaxByKey returns the element whose key is largest.
func MaxByKey[S, T any, K cmp.Ordered](p ParIter[S, T], key func(T) K) (T, bool, error) {
	return Reduce(p, func(a, b T) T {
		if key(b) > key(a) {
			return b
		}
		return a
	})
}
