package streams

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstOrdered(t *testing.T) {
	t.Parallel()

	items := make([]int, 2000)
	for i := range items {
		items[i] = i
	}
	got, found, err := First(ParFromSlice(items))
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, got, "ordered First must return the element at index 0")
}

func TestFirstEmpty(t *testing.T) {
	t.Parallel()

	_, found, err := First(ParFromSlice([]int{}))
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestFindNoMatch(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3}
	_, found, err := Find(ParFromSlice(items), func(x int) bool { return x > 100 })
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestFindErrorBeforeMatch(t *testing.T) {
	t.Parallel()

	// The error occurs at an earlier index than any matching element, so
	// ordered Find must surface the error instead of the later match.
	items := []int{1, -1, 3, 9}
	p := MapWhileOk(ParFromSlice(items), func(x int) (int, error) {
		if x < 0 {
			return 0, errors.New("negative")
		}
		return x, nil
	})
	_, found, err := Find(p, func(x int) bool { return x == 9 })
	assert.Error(t, err)
	assert.False(t, found)
}

func TestFindMatchBeforeError(t *testing.T) {
	t.Parallel()

	// The match occurs before the error's index, so it must win.
	items := []int{9, 1, -1, 3}
	p := MapWhileOk(ParFromSlice(items), func(x int) (int, error) {
		if x < 0 {
			return 0, errors.New("negative")
		}
		return x, nil
	})
	got, found, err := Find(p, func(x int) bool { return x == 9 })
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 9, got)
}

func TestFindArbitrary(t *testing.T) {
	t.Parallel()

	items := make([]int, 5000)
	for i := range items {
		items[i] = i
	}
	p := ParFromSlice(items).ArbitraryIter()
	got, found, err := Find(p, func(x int) bool { return x == 4321 })
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4321, got)
}

func TestAnyForcesArbitrary(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}
	found, err := Any(ParFromSlice(items).OrderedIter(), func(x int) bool { return x == 3 })
	assert.NoError(t, err)
	assert.True(t, found, "Any must still find a match even when the caller's pipeline was Ordered")
}

func TestForEachPropagatesError(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, -1, 4}
	p := MapWhileOk(ParFromSlice(items), func(x int) (int, error) {
		if x < 0 {
			return 0, errors.New("negative")
		}
		return x, nil
	})
	err := ForEach(p, func(int) {})
	assert.Error(t, err)
}
