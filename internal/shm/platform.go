// Package shm contains platform-specific helpers for mapping named shared memory segments.
package shm

import "errors"

var (
	// ErrUnsupportedPlatform is returned by MapRegion on platforms without a named shared memory
	// implementation.
	ErrUnsupportedPlatform = errors.New("shared memory not supported on this platform")

	// ErrNoSegmentFile is returned by SegmentPath where named segments are not files.
	ErrNoSegmentFile = errors.New("named segments have no file path on this platform")
)

// DevShmDir is the directory holding named segments and their lock files on Linux.
var DevShmDir = "/dev/shm"

// MappedRegion represents a memory-mapped shared region.
type MappedRegion struct {
	Addr []byte
	Name string

	// windows: file mapping handle and view base address
	handle uintptr
	view   uintptr
}

// MapOptions defines options for mapping shared memory.
type MapOptions struct {
	Name string
	Size int
	// Create allows the segment to be created (and grown to Size) when missing.
	Create bool
	// LockName names the synchronization object created or opened before the
	// segment. Empty skips it.
	LockName string
}

// Function implementations are provided in platform-specific files (e.g., platform_linux.go, platform_windows.go).
