package shm

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySharesRegion(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	mapper := NewHeapMapper()
	released := 0
	cfg := Config{
		Name:      "FT_SharedMem",
		Size:      108,
		Create:    true,
		Mapper:    mapper,
		OnRelease: func([]byte) { released++ },
	}

	a, err := reg.Get(cfg)
	require.NoError(t, err)
	b, err := reg.Get(cfg)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 2, reg.Refs("FT_SharedMem"))

	_, err = a.Acquire(ctx)
	require.NoError(t, err)

	require.NoError(t, reg.Put(ctx, a))
	assert.Equal(t, 1, reg.Refs("FT_SharedMem"))
	assert.True(t, b.Mapped())
	assert.Equal(t, 0, released)

	require.NoError(t, reg.Put(ctx, b))
	assert.Equal(t, 0, reg.Refs("FT_SharedMem"))
	assert.False(t, b.Mapped())
	assert.Equal(t, 1, released)

	require.NoError(t, reg.Put(ctx, b))
	require.NoError(t, reg.Put(ctx, nil))
}

func TestRegistryRejectsInvalidConfig(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get(Config{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, 0, reg.Refs("x"))
}

func TestRegistryConcurrentRefs(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	cfg := Config{Name: "FT_SharedMem", Size: 108, Create: true, Mapper: NewHeapMapper()}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				r, err := reg.Get(cfg)
				if !assert.NoError(t, err) {
					return
				}
				assert.Positive(t, reg.Refs(cfg.Name))
				assert.NoError(t, reg.Put(ctx, r))
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, reg.Refs(cfg.Name))
}
