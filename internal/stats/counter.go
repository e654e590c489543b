package stats

import "sort"

// Count pairs a key with its occurrence count.
type Count[K comparable] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// Counter counts occurrences of keys and remembers the order in which each
// key was first seen. That order breaks ties in MostCommon.
type Counter[K comparable] struct {
	index   map[K]int
	entries []Count[K]
}

// NewCounter returns an empty Counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{index: make(map[K]int)}
}

// Inc adds one occurrence of key.
func (c *Counter[K]) Inc(key K) {
	c.Add(key, 1)
}

// Add adds n occurrences of key.
func (c *Counter[K]) Add(key K, n int) {
	if i, ok := c.index[key]; ok {
		c.entries[i].Count += n
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Count[K]{Key: key, Count: n})
}

// Get returns the count for key, zero when it was never added.
func (c *Counter[K]) Get(key K) int {
	if i, ok := c.index[key]; ok {
		return c.entries[i].Count
	}
	return 0
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int {
	total := 0
	for _, e := range c.entries {
		total += e.Count
	}
	return total
}

// Entries returns a copy of all entries in first-seen order.
func (c *Counter[K]) Entries() []Count[K] {
	out := make([]Count[K], len(c.entries))
	copy(out, c.entries)
	return out
}

// MostCommon returns up to n entries ordered by descending count, ties kept
// in first-seen order. n <= 0 returns every entry.
func (c *Counter[K]) MostCommon(n int) []Count[K] {
	out := c.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
