//go:build windows

package shm

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// MapRegion maps or creates a shared memory region (Windows implementation).
//
// The lock is a named mutex that is created and immediately closed, matching
// what legacy clients of the segment do.
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid region size %d", opts.Size)
	}
	if opts.LockName != "" {
		lockName, err := windows.UTF16PtrFromString(opts.LockName)
		if err != nil {
			return nil, fmt.Errorf("lock name: %w", err)
		}
		// CreateMutex reports ERROR_ALREADY_EXISTS alongside a valid handle
		h, err := windows.CreateMutex(nil, false, lockName)
		if h == 0 {
			return nil, fmt.Errorf("CreateMutex: %w", err)
		}
		_ = windows.CloseHandle(h)
	}

	name, err := windows.UTF16PtrFromString(opts.Name)
	if err != nil {
		return nil, fmt.Errorf("mapping name: %w", err)
	}
	var h windows.Handle
	if opts.Create {
		h, err = windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, uint32(opts.Size), name)
	} else {
		h, err = windows.OpenFileMapping(windows.FILE_MAP_WRITE, false, name)
	}
	if h == 0 {
		return nil, fmt.Errorf("file mapping %s: %w", opts.Name, err)
	}
	view, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, uintptr(opts.Size))
	if view == 0 {
		_ = windows.CloseHandle(h)
		return nil, fmt.Errorf("MapViewOfFile: %w", err)
	}
	return &MappedRegion{
		Addr:   unsafe.Slice((*byte)(unsafe.Pointer(view)), opts.Size),
		Name:   opts.Name,
		handle: uintptr(h),
		view:   view,
	}, nil
}

// UnmapRegion unmaps and closes the shared memory region (Windows implementation).
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	region.Addr = nil
	var err error
	if region.view != 0 {
		if uerr := windows.UnmapViewOfFile(region.view); uerr != nil {
			err = fmt.Errorf("UnmapViewOfFile: %w", uerr)
		}
		region.view = 0
	}
	if region.handle != 0 {
		_ = windows.CloseHandle(windows.Handle(region.handle))
		region.handle = 0
	}
	return err
}

// SegmentPath fails on Windows: named file mappings live in the kernel object
// namespace, not the filesystem.
func SegmentPath(name string) (string, error) {
	return "", ErrNoSegmentFile
}

// RemoveRegion is a no-op on Windows: named mappings disappear with their last handle.
func RemoveRegion(name, lockName string) error {
	return nil
}
