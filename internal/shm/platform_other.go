//go:build !linux && !windows

package shm

import "context"

// MapRegion always fails with ErrUnsupportedPlatform.
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	return nil, ErrUnsupportedPlatform
}

// UnmapRegion is a no-op.
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	return nil
}

// SegmentPath always fails with ErrNoSegmentFile.
func SegmentPath(name string) (string, error) {
	return "", ErrNoSegmentFile
}

// RemoveRegion is a no-op.
func RemoveRegion(name, lockName string) error {
	return nil
}
