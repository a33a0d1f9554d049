package shm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomicInt32(t *testing.T) {
	mem := make([]byte, 16)

	AtomicStoreInt32(mem, 4, 7)
	assert.Equal(t, int32(7), AtomicLoadInt32(mem, 4))
	assert.Equal(t, []byte{7, 0, 0, 0}, mem[4:8])

	assert.False(t, AtomicCompareAndSwapInt32(mem, 4, 6, 1))
	assert.True(t, AtomicCompareAndSwapInt32(mem, 4, 7, -1))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, mem[4:8])

	assert.Equal(t, int32(-1), AtomicSwapInt32(mem, 4, 3))
	assert.Equal(t, int32(3), AtomicLoadInt32(mem, 4))
}

func TestAtomicInt32Misaligned(t *testing.T) {
	mem := make([]byte, 16)
	assert.Panics(t, func() { AtomicLoadInt32(mem, 1) })
	assert.Panics(t, func() { AtomicLoadInt32(mem, 14) })
}

func TestAtomicCompareAndSwapDecrementsOnce(t *testing.T) {
	mem := make([]byte, 8)
	AtomicStoreInt32(mem, 0, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 125; j++ {
				for {
					v := AtomicLoadInt32(mem, 0)
					if AtomicCompareAndSwapInt32(mem, 0, v, v-1) {
						break
					}
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(0), AtomicLoadInt32(mem, 0))
}
