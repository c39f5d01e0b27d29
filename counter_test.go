package sidecar_test

import (
	"testing"

	"github.com/0xazure/sidecar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterIncrement(t *testing.T) {
	counter := sidecar.NewCounter[string]()

	count, ok := counter.Get("absent")
	assert.False(t, ok)
	assert.Equal(t, 0, count)

	counter.Increment("solo")
	count, ok = counter.Get("solo")
	assert.True(t, ok)
	assert.Equal(t, 1, count)

	counter.Increment("solo")
	count, _ = counter.Get("solo")
	assert.Equal(t, 2, count)

	assert.Equal(t, 1, counter.Len())
}

func TestCounterSortedCounts(t *testing.T) {
	counter := sidecar.NewCounter[string]()
	for _, key := range []string{"y", "x", "z", "x", "y"} {
		counter.Increment(key)
	}

	// descending by count, ties broken alphabetically
	expected := []sidecar.KeyCount[string]{
		{Key: "x", Count: 2},
		{Key: "y", Count: 2},
		{Key: "z", Count: 1},
	}
	assert.Equal(t, expected, counter.SortedCounts())
}

func TestCounterIntKeys(t *testing.T) {
	counter := sidecar.NewCounter[int]()
	counter.Increment(10)
	counter.Increment(3)
	counter.Increment(10)

	require.Equal(t, []sidecar.KeyCount[int]{
		{Key: 10, Count: 2},
		{Key: 3, Count: 1},
	}, counter.SortedCounts())
}

func TestCounterEmpty(t *testing.T) {
	counter := sidecar.NewCounter[string]()
	assert.Equal(t, 0, counter.Len())
	assert.Empty(t, counter.SortedCounts())
}
