package streams

import (
	collections "github.com/ilxqx/go-collections"
)

// =============================================================================
// Terminal Operations returning go-collections types
// =============================================================================

// ToHashSet collects stream elements into a collections.Set[T].
func ToHashSet[T comparable](s Stream[T]) collections.Set[T] {
	set := collections.NewHashSet[T]()
	set.AddSeq(s.Seq())
	return set
}

// ToArrayList collects stream elements into a collections.List[T].
func ToArrayList[T any](s Stream[T]) collections.List[T] {
	list := collections.NewArrayList[T]()
	list.AddSeq(s.Seq())
	return list
}

// ToHashMapC collects stream elements into a collections.Map[K, V].
// The "C" suffix distinguishes it from ToMap which returns a Go map.
func ToHashMapC[T any, K comparable, V any](s Stream[T], keyFn func(T) K, valFn func(T) V) collections.Map[K, V] {
	m := collections.NewHashMap[K, V]()
	for v := range s.Seq() {
		m.Put(keyFn(v), valFn(v))
	}
	return m
}
