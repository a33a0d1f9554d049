package shm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/srediag/plugin-npclient/internal/debug"
)

const instrumentationName = "github.com/srediag/plugin-npclient/pkg/shm"

var (
	// ErrMappingUnavailable wraps every failure to attach a segment.
	ErrMappingUnavailable = errors.New("shared memory mapping unavailable")

	internalLogger = debug.New("shm", nil)
)

// Config holds region creation parameters.
type Config struct {
	Name     string // shared memory name or identifier
	LockName string // synchronization object touched before mapping
	Size     int    // region size in bytes
	Create   bool   // create the segment when missing

	// Mapper defaults to PlatformMapper.
	Mapper Mapper
	// OnRelease runs against the mapped bytes right before they are unmapped.
	OnRelease func(mem []byte)

	Meter  metric.Meter
	Tracer trace.Tracer
}

// Region is a lazily attached named segment. It is safe for concurrent use.
type Region struct {
	cfg      Config
	tracer   trace.Tracer
	acquires metric.Int64Counter

	mu      sync.Mutex
	mapping Mapping
}

// NewRegion validates cfg and returns an unattached Region.
func NewRegion(cfg Config) (*Region, error) {
	if cfg.Name == "" {
		return nil, errors.New("region name is empty")
	}
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("invalid region size %d", cfg.Size)
	}
	if cfg.Mapper == nil {
		cfg.Mapper = PlatformMapper{}
	}
	if cfg.Meter == nil {
		cfg.Meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}
	if cfg.Tracer == nil {
		cfg.Tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}
	acquires, err := cfg.Meter.Int64Counter("shm.region.acquire",
		metric.WithDescription("Attempts to attach a shared memory region."))
	if err != nil {
		return nil, fmt.Errorf("acquire counter: %w", err)
	}
	return &Region{
		cfg:      cfg,
		tracer:   cfg.Tracer,
		acquires: acquires,
	}, nil
}

// Name returns the segment name.
func (r *Region) Name() string { return r.cfg.Name }

// Acquire attaches the segment if needed and returns its bytes. It returns
// immediately when already attached. Failures wrap ErrMappingUnavailable and
// leave the region unattached, so the next call retries.
func (r *Region) Acquire(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mapping != nil {
		return r.mapping.Bytes(), nil
	}

	ctx, span := r.tracer.Start(ctx, "shm.Region.Acquire",
		trace.WithAttributes(attribute.String("shm.name", r.cfg.Name), attribute.Int("shm.size", r.cfg.Size)))
	defer span.End()

	internalLogger.Debugf("mapping request %s (%d bytes, create=%t)", r.cfg.Name, r.cfg.Size, r.cfg.Create)
	m, err := r.cfg.Mapper.Map(ctx, OpenOptions{
		Name:     r.cfg.Name,
		LockName: r.cfg.LockName,
		Size:     r.cfg.Size,
		Create:   r.cfg.Create,
	})
	if err == nil && len(m.Bytes()) < r.cfg.Size {
		_ = m.Unmap(ctx)
		err = fmt.Errorf("mapped %d bytes, want %d", len(m.Bytes()), r.cfg.Size)
	}
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrMappingUnavailable, r.cfg.Name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.acquires.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
		internalLogger.Debugf("%v", err)
		return nil, err
	}
	r.acquires.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "mapped")))
	r.mapping = m
	return m.Bytes(), nil
}

// Bytes returns the mapped bytes, or nil when unattached.
func (r *Region) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mapping == nil {
		return nil
	}
	return r.mapping.Bytes()
}

// Mapped reports whether the region is attached.
func (r *Region) Mapped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mapping != nil
}

// Release runs the OnRelease hook and unmaps the segment. It is a no-op when
// the region was never attached, and the region may be acquired again later.
func (r *Region) Release(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mapping == nil {
		return nil
	}
	if r.cfg.OnRelease != nil {
		r.cfg.OnRelease(r.mapping.Bytes())
	}
	err := r.mapping.Unmap(ctx)
	r.mapping = nil
	if err != nil {
		internalLogger.Warnf("unmap %s: %v", r.cfg.Name, err)
		return fmt.Errorf("release %s: %w", r.cfg.Name, err)
	}
	internalLogger.Debugf("released %s", r.cfg.Name)
	return nil
}
