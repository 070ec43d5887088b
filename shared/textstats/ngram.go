package textstats

import (
	"sort"
	"strings"

	"ctr-optimizer/internal/models"
)

// Counter counts string keys and remembers the order in which keys were first seen,
// so that TopK breaks count ties by first appearance.
type Counter struct {
	index   map[string]int
	entries []models.CountEntry
}

func NewCounter() *Counter {
	return &Counter{index: make(map[string]int)}
}

// Add increments key by one.
func (c *Counter) Add(key string) {
	if i, ok := c.index[key]; ok {
		c.entries[i].Count++
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, models.CountEntry{Text: key, Count: 1})
}

// Count returns the current count for key.
func (c *Counter) Count(key string) int {
	if i, ok := c.index[key]; ok {
		return c.entries[i].Count
	}
	return 0
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.entries)
}

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	total := 0
	for _, e := range c.entries {
		total += e.Count
	}
	return total
}

// TopK returns at most k entries ordered by count descending, ties in first-seen order.
func (c *Counter) TopK(k int) []models.CountEntry {
	if k <= 0 {
		return []models.CountEntry{}
	}
	sorted := make([]models.CountEntry, len(c.entries))
	copy(sorted, c.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

// CountNgrams adds every contiguous window of n tokens, joined by a single space, to c.
func CountNgrams(tokens []string, n int, c *Counter) {
	if n <= 0 {
		return
	}
	for i := 0; i+n <= len(tokens); i++ {
		c.Add(strings.Join(tokens[i:i+n], " "))
	}
}
