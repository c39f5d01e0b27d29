package sidecar

import (
	"cmp"
	"sort"
)

// Counter tallies how often each key has been seen. Create one with
// NewCounter; the zero value is not usable.
type Counter[K cmp.Ordered] struct {
	counts map[K]int
}

type KeyCount[K cmp.Ordered] struct {
	Key   K
	Count int
}

func NewCounter[K cmp.Ordered]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

func (c *Counter[K]) Increment(key K) {
	c.counts[key]++
}

func (c *Counter[K]) Get(key K) (int, bool) {
	count, ok := c.counts[key]
	return count, ok
}

func (c *Counter[K]) Len() int {
	return len(c.counts)
}

// SortedCounts returns every key ordered by count descending, ties broken by
// key ascending.
func (c *Counter[K]) SortedCounts() []KeyCount[K] {
	result := make([]KeyCount[K], 0, len(c.counts))
	for key, count := range c.counts {
		result = append(result, KeyCount[K]{Key: key, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Key < result[j].Key
	})

	return result
}
