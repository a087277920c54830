package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetFromCache(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("isin:INE002A01018", "Reliance Industries", 0)
	c.Set("count", 3, 0)

	name, ok := GetFromCache[string](c, "isin:INE002A01018")
	assert.True(t, ok)
	assert.Equal(t, "Reliance Industries", name)

	_, ok = GetFromCache[string](c, "count")
	assert.False(t, ok, "wrong type must miss")

	_, ok = GetFromCache[string](c, "missing")
	assert.False(t, ok)

	c.Delete("count")
	_, ok = c.Get("count")
	assert.False(t, ok)

	c.Flush()
	_, ok = c.Get("isin:INE002A01018")
	assert.False(t, ok)
}
