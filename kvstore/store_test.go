package kvstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("b", 2)
	s.Set("a", "one")

	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "one", v)
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	s.Set("a", "uno")
	v, _ = s.Get("a")
	assert.Equal(t, "uno", v)

	s.Delete("a")
	s.Delete("a")

	_, ok = s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, map[string]any{"b": 2}, s.Snapshot())
}

func TestMemoryStore_ZeroValue(t *testing.T) {
	var s MemoryStore

	_, ok := s.Get("k")
	assert.False(t, ok)

	s.Set("k", true)
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestMemoryStore_CopiesBytes(t *testing.T) {
	s := NewMemoryStore()

	blob := []byte{1, 2, 3}
	s.Set("avatar", blob)
	blob[0] = 9

	raw, ok := s.Get("avatar")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, raw)

	raw.([]byte)[1] = 9

	again, _ := s.Get("avatar")
	assert.Equal(t, []byte{1, 2, 3}, again)

	snap := s.Snapshot()
	snap["avatar"].([]byte)[2] = 9

	again, _ = s.Get("avatar")
	assert.Equal(t, []byte{1, 2, 3}, again)

	s.Set("empty", []byte(nil))
	raw, ok = s.Get("empty")
	require.True(t, ok)
	assert.Nil(t, raw)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			key := fmt.Sprintf("k%d", i)
			for j := range 100 {
				s.Set(key, j)
				_, _ = s.Get(key)
			}
		}()
	}

	wg.Wait()

	assert.Len(t, s.Keys(), 16)

	v, _ := s.Get("k3")
	assert.Equal(t, 99, v)
}

func TestNopRegistrar(t *testing.T) {
	var r Registrar = NopRegistrar{}

	r.Access(nil, "k")

	calls := 0
	r.WithMutation(nil, "k", func() { calls++ })
	assert.Equal(t, 1, calls)
}
