package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctr-optimizer/internal/models"
)

func TestCountNgrams(t *testing.T) {
	tokens := []string{"renda", "extra", "renda", "extra", "rapido"}

	t.Run("bigrams", func(t *testing.T) {
		c := NewCounter()
		CountNgrams(tokens, 2, c)
		assert.Equal(t, len(tokens)-2+1, c.Total())
		assert.Equal(t, 2, c.Count("renda extra"))
		assert.Equal(t, 1, c.Count("extra renda"))
		assert.Equal(t, 1, c.Count("extra rapido"))
		assert.Equal(t, 3, c.Len())
	})

	t.Run("trigrams", func(t *testing.T) {
		c := NewCounter()
		CountNgrams(tokens, 3, c)
		assert.Equal(t, 3, c.Total())
		assert.Equal(t, 1, c.Count("renda extra renda"))
	})

	t.Run("window larger than tokens", func(t *testing.T) {
		c := NewCounter()
		CountNgrams(tokens[:2], 3, c)
		assert.Equal(t, 0, c.Total())
	})

	t.Run("accumulates across calls", func(t *testing.T) {
		c := NewCounter()
		CountNgrams([]string{"caso", "real"}, 2, c)
		CountNgrams([]string{"caso", "real", "chocante"}, 2, c)
		assert.Equal(t, 2, c.Count("caso real"))
		assert.Equal(t, 3, c.Total())
	})
}

func TestCounterTopK(t *testing.T) {
	c := NewCounter()
	for _, w := range []string{"b", "a", "c", "a", "c", "d"} {
		c.Add(w)
	}

	t.Run("ties keep first-seen order", func(t *testing.T) {
		got := c.TopK(3)
		assert.Equal(t, []models.CountEntry{{Text: "a", Count: 2}, {Text: "c", Count: 2}, {Text: "b", Count: 1}}, got)
	})

	t.Run("never exceeds k", func(t *testing.T) {
		for k := 0; k <= 6; k++ {
			assert.LessOrEqual(t, len(c.TopK(k)), k)
		}
	})

	t.Run("returned counts dominate the rest", func(t *testing.T) {
		top := c.TopK(2)
		require.Len(t, top, 2)
		minTop := top[len(top)-1].Count
		returned := map[string]bool{}
		for _, e := range top {
			returned[e.Text] = true
		}
		for _, e := range c.TopK(c.Len()) {
			if !returned[e.Text] {
				assert.GreaterOrEqual(t, minTop, e.Count)
			}
		}
	})

	t.Run("does not mutate counter", func(t *testing.T) {
		_ = c.TopK(1)
		assert.Equal(t, 4, c.Len())
		assert.Equal(t, 1, c.Count("b"))
	})
}
