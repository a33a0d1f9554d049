//go:build linux

package shm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/unix"
)

// SegmentPath returns the file backing the named segment.
func SegmentPath(name string) (string, error) {
	return filepath.Join(DevShmDir, name), nil
}

// MapRegion maps or creates a shared memory region (Linux implementation).
//
// The segment is the file DevShmDir/<Name>. It is only grown, never shrunk, so a
// peer that created a larger segment keeps its size.
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid region size %d", opts.Size)
	}
	if opts.LockName != "" {
		unlock, err := lockNamed(opts.LockName)
		if err != nil {
			return nil, fmt.Errorf("lock %s: %w", opts.LockName, err)
		}
		defer unlock()
	}

	flags := unix.O_RDWR | unix.O_CLOEXEC
	if opts.Create {
		flags |= unix.O_CREAT
	}
	shmPath := filepath.Join(DevShmDir, opts.Name)
	fd, err := unix.Open(shmPath, flags, 0600)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	// the mapping stays valid after the descriptor is closed
	defer func() { _ = unix.Close(fd) }()

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("fstat: %w", err)
	}
	if st.Size < int64(opts.Size) {
		if !opts.Create {
			return nil, fmt.Errorf("segment %s is %d bytes, want %d", shmPath, st.Size, opts.Size)
		}
		if !canCreateOnDevShm(uint64(opts.Size)-uint64(st.Size), shmPath) {
			return nil, fmt.Errorf("no space left on %s for %d bytes", DevShmDir, opts.Size)
		}
		if err := unix.Ftruncate(fd, int64(opts.Size)); err != nil {
			return nil, fmt.Errorf("ftruncate: %w", err)
		}
	}
	addr, err := unix.Mmap(fd, 0, opts.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &MappedRegion{
		Addr: addr,
		Name: opts.Name,
	}, nil
}

// UnmapRegion unmaps the shared memory region (Linux implementation). The
// segment file is left in place for the peer process.
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	if err := unix.Munmap(region.Addr); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	region.Addr = nil
	return nil
}

// RemoveRegion deletes a named segment and its lock file. Only the producer side
// or tests should call it.
func RemoveRegion(name, lockName string) error {
	var errs []error
	if err := unix.Unlink(filepath.Join(DevShmDir, name)); err != nil && !errors.Is(err, unix.ENOENT) {
		errs = append(errs, err)
	}
	if lockName != "" {
		if err := unix.Unlink(filepath.Join(DevShmDir, lockName)); err != nil && !errors.Is(err, unix.ENOENT) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// lockNamed creates or opens the lock file and takes a non-blocking exclusive
// flock on it. A lock held by the peer is not waited for: segment creation is
// idempotent, so the lock only narrows the window in which both sides grow it.
func lockNamed(name string) (func(), error) {
	fd, err := unix.Open(filepath.Join(DevShmDir, name), unix.O_RDWR|unix.O_CREAT|unix.O_CLOEXEC, 0600)
	if err != nil {
		return nil, err
	}
	locked := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB) == nil
	return func() {
		if locked {
			_ = unix.Flock(fd, unix.LOCK_UN)
		}
		_ = unix.Close(fd)
	}, nil
}

// canCreateOnDevShm reports whether size more bytes fit on the filesystem
// holding path. Only /dev/shm is checked; other locations always pass.
func canCreateOnDevShm(size uint64, path string) bool {
	if filepath.Dir(path) != "/dev/shm" {
		return true
	}
	stat, err := disk.Usage("/dev/shm")
	if err != nil {
		return true
	}
	return stat.Free >= size
}
