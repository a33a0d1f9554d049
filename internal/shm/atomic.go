package shm

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// The helpers below operate on an int32 stored in mapped bytes at off. The
// word must be 4-byte aligned; the peer process is expected to use interlocked
// operations on the same word.

// AtomicLoadInt32 loads an int32 from shared memory atomically.
func AtomicLoadInt32(mem []byte, off int) int32 {
	return atomic.LoadInt32(int32At(mem, off))
}

// AtomicStoreInt32 stores an int32 to shared memory atomically.
func AtomicStoreInt32(mem []byte, off int, val int32) {
	atomic.StoreInt32(int32At(mem, off), val)
}

// AtomicSwapInt32 atomically stores val and returns the previous value.
func AtomicSwapInt32(mem []byte, off int, val int32) int32 {
	return atomic.SwapInt32(int32At(mem, off), val)
}

// AtomicCompareAndSwapInt32 atomically compares and swaps an int32 in shared memory.
func AtomicCompareAndSwapInt32(mem []byte, off int, old, new int32) bool {
	return atomic.CompareAndSwapInt32(int32At(mem, off), old, new)
}

func int32At(mem []byte, off int) *int32 {
	_ = mem[off+3]
	p := unsafe.Pointer(&mem[off])
	if uintptr(p)%4 != 0 {
		panic(fmt.Sprintf("shm: misaligned int32 at offset %d", off))
	}
	return (*int32)(p)
}
