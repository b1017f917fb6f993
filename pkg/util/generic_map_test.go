package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenericMapLen(t *testing.T) {
	m := NewGenericMap[string, int]()
	m.Store("a", 1)
	m.Store("a", 2)
	m.Store("b", 3)
	assert.Equal(t, 2, m.Len())

	v, ok := m.Load("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	m.Delete("a")
	m.Delete("a")
	assert.Equal(t, 1, m.Len())

	_, ok = m.LoadAndDelete("missing")
	assert.False(t, ok)
}

func TestGenericMapConcurrentStore(t *testing.T) {
	m := NewGenericMap[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Store(i, i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 64, m.Len())

	seen := 0
	m.Range(func(key, value int) bool {
		assert.Equal(t, key, value)
		seen++
		return true
	})
	assert.Equal(t, 64, seen)
}
