package shm

import (
	"context"
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"

	internalshm "github.com/srediag/plugin-npclient/internal/shm"
)

// OpenOptions defines options for creating or opening a shared memory segment.
type OpenOptions struct {
	// Name is the identifier for the shared memory region.
	Name string
	// LockName names the synchronization object touched before mapping. Empty skips it.
	LockName string
	// Size is the segment size in bytes.
	Size int
	// Create indicates whether to create (if not exists) or open existing.
	Create bool
}

// Mapping is one attached view of a segment.
type Mapping interface {
	Bytes() []byte
	Unmap(ctx context.Context) error
}

// Mapper attaches named segments.
type Mapper interface {
	Map(ctx context.Context, opts OpenOptions) (Mapping, error)
}

// PlatformMapper maps segments through the operating system.
type PlatformMapper struct{}

// Map implements Mapper.
func (PlatformMapper) Map(ctx context.Context, opts OpenOptions) (Mapping, error) {
	region, err := internalshm.MapRegion(ctx, internalshm.MapOptions{
		Name:     opts.Name,
		Size:     opts.Size,
		Create:   opts.Create,
		LockName: opts.LockName,
	})
	if err != nil {
		return nil, err
	}
	return platformMapping{region}, nil
}

type platformMapping struct {
	region *internalshm.MappedRegion
}

func (m platformMapping) Bytes() []byte { return m.region.Addr }

func (m platformMapping) Unmap(ctx context.Context) error {
	return internalshm.UnmapRegion(ctx, m.region)
}

// HeapMapper backs segments with process memory. Every Map of the same name
// returns a view of the same bytes, so two components in one process see each
// other's writes the way two processes would through a real segment.
type HeapMapper struct {
	segments cmap.ConcurrentMap[string, []byte]
}

// NewHeapMapper returns an empty HeapMapper.
func NewHeapMapper() *HeapMapper {
	return &HeapMapper{segments: cmap.New[[]byte]()}
}

// Map implements Mapper.
func (h *HeapMapper) Map(_ context.Context, opts OpenOptions) (Mapping, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid region size %d", opts.Size)
	}
	if !opts.Create {
		mem, ok := h.segments.Get(opts.Name)
		if !ok {
			return nil, fmt.Errorf("segment %s does not exist", opts.Name)
		}
		if len(mem) < opts.Size {
			return nil, fmt.Errorf("segment %s is %d bytes, want %d", opts.Name, len(mem), opts.Size)
		}
		return heapMapping(mem[:opts.Size]), nil
	}
	mem := h.segments.Upsert(opts.Name, nil, func(exist bool, cur []byte, _ []byte) []byte {
		if exist && len(cur) >= opts.Size {
			return cur
		}
		grown := make([]byte, opts.Size)
		copy(grown, cur)
		return grown
	})
	return heapMapping(mem[:opts.Size]), nil
}

// Segment returns the bytes behind name, or nil.
func (h *HeapMapper) Segment(name string) []byte {
	mem, _ := h.segments.Get(name)
	return mem
}

// Remove forgets a segment. Existing mappings keep their bytes.
func (h *HeapMapper) Remove(name string) {
	h.segments.Remove(name)
}

type heapMapping []byte

func (m heapMapping) Bytes() []byte { return m }

func (m heapMapping) Unmap(context.Context) error { return nil }
