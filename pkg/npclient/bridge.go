package npclient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/plugin-npclient/api"
	"github.com/srediag/plugin-npclient/internal/debug"
	"github.com/srediag/plugin-npclient/pkg/freetrack"
	"github.com/srediag/plugin-npclient/pkg/shm"
)

// ErrIdentityMismatch reports that the shared record does not belong to the
// registered game, or is mid-write.
var ErrIdentityMismatch = errors.New("shared record does not match the registered game")

// Bridge serves the legacy head tracker client contract from the shared pose
// record. Every operation either succeeds or degrades to a disabled status;
// none of them fail the caller. A Bridge is safe for concurrent use: one lock
// guards the session state (held pose, cipher table, identity binding, frame
// counter).
type Bridge struct {
	api.NopHousekeeping

	cfg      Config
	logger   *debug.Logger
	logFile  *os.File
	registry *shm.Registry
	region   *shm.Region
	metrics  *Metrics

	mu      sync.Mutex
	seq     Sequencer
	binding uint32
	frame   uint32
	closed  bool
	last    Step
	mapped  bool
}

type options struct {
	mapper   shm.Mapper
	registry *shm.Registry
	metrics  *Metrics
	meter    metric.Meter
	tracer   trace.Tracer
}

// Option configures NewBridge.
type Option func(*options)

// WithMapper attaches segments through m instead of the operating system.
func WithMapper(m shm.Mapper) Option {
	return func(o *options) { o.mapper = m }
}

// WithRegistry shares the segment mapping with other owners in the process.
func WithRegistry(r *shm.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithMetrics records bridge activity into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithMeter instruments the shared region with an OpenTelemetry meter.
func WithMeter(m metric.Meter) Option {
	return func(o *options) { o.meter = m }
}

// WithTracer instruments the shared region with an OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// NewBridge returns a Bridge for cfg. A nil cfg uses DefaultConfig. The
// segment is not touched until the first request.
func NewBridge(cfg *Config, opts ...Option) (*Bridge, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := VerifyConfig(cfg); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	if cfg.LogLevel >= 0 {
		debug.SetLogLevel(cfg.LogLevel)
	}

	b := &Bridge{
		cfg:      *cfg,
		logger:   debug.New("npclient", nil),
		registry: o.registry,
		metrics:  o.metrics,
	}
	if cfg.LogFile != "" {
		f, err := debug.OpenFile(cfg.LogFile)
		if err != nil {
			b.logger.Warnf("%v, logging to stdout", err)
		} else {
			b.logFile = f
			b.logger.SetOutput(f)
		}
	}

	rc := shm.Config{
		Name:     cfg.MappingName,
		LockName: cfg.MutexName,
		Size:     freetrack.StateSize,
		Create:   true,
		Mapper:   o.mapper,
		// leave the record disabled so nothing keeps waiting on a dead session
		OnRelease: func(mem []byte) {
			if st, err := freetrack.View(mem); err == nil {
				st.Disable()
			}
		},
		Meter:  o.meter,
		Tracer: o.tracer,
	}
	var err error
	if b.registry != nil {
		b.region, err = b.registry.Get(rc)
	} else {
		b.region, err = shm.NewRegion(rc)
	}
	if err != nil {
		b.closeLog()
		return nil, fmt.Errorf("shared region: %w", err)
	}
	return b, nil
}

// state attaches the segment. It returns nil when the mapping is unavailable
// or the bridge is closed.
func (b *Bridge) state(ctx context.Context) *freetrack.State {
	if b.closed {
		return nil
	}
	mem, err := b.region.Acquire(ctx)
	if err != nil {
		b.logger.Debugf("Can't open mapping: %v", err)
		return nil
	}
	st, err := freetrack.View(mem)
	if err != nil {
		b.logger.Warnf("%v", err)
		return nil
	}
	return &st
}

// GetData answers one data request. running is false when the producer is
// absent, disabled, or publishing for another game; the packet then carries
// the last known pose and a disabled status.
func (b *Bridge) GetData(ctx context.Context) (Packet, bool) {
	pkt, step, _ := b.poll(ctx)
	return pkt, step.Running()
}

func (b *Bridge) poll(ctx context.Context) (Packet, Step, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := b.state(ctx)
	_, hadTable := b.seq.Table()
	step := b.seq.Advance(st, b.binding)
	if table, ok := b.seq.Table(); ok && !hadTable {
		b.logger.Infof("GetData: game = %d, table = % x, obfuscation = %t", b.binding, table[:], table.Enabled())
	}

	b.frame++
	running := step.Running()
	status := api.StatusOK
	if !running {
		status = api.StatusDisabled
	}
	pkt := Packet{
		Status: status,
		Frame:  int16(b.frame),
		Roll:   float32(Clamp(step.Axes.Roll)),
		Pitch:  float32(Clamp(step.Axes.Pitch)),
		Yaw:    float32(Clamp(step.Axes.Yaw)),
		TX:     float32(Clamp(step.Axes.X)),
		TY:     float32(Clamp(step.Axes.Y)),
		TZ:     float32(Clamp(step.Axes.Z)),
	}
	table, _ := b.seq.Table()
	pkt.seal(table)

	b.last, b.mapped = step, st != nil
	b.metrics.observe(status, step, st != nil)
	if b.logger.Enabled(debug.LevelTrace) {
		b.logger.Tracef("GetData: rotation: %f %f %f", pkt.Yaw, pkt.Pitch, pkt.Roll)
		b.logger.Tracef("GetData: status:%s phase:%s dataid:%d enc:%t", status, step.Phase, step.Countdown, pkt.Obfuscated)
	}
	return pkt, step, st != nil
}

// RegisterProgramProfileID binds the session to a game id and publishes it to
// the producer. It reports false, changing nothing, when the mapping is unavailable.
func (b *Bridge) RegisterProgramProfileID(ctx context.Context, id uint16) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger.Debugf("RegisterProgramProfileID request: %d", id)
	st := b.state(ctx)
	if st == nil {
		return false
	}
	st.SetGameID(uint32(id))
	b.binding = uint32(id)
	return true
}

// GetSignature returns the client identification strings.
func (b *Bridge) GetSignature() Signature {
	b.logger.Debugf("GetSignature request")
	return GetSignature()
}

// QueryVersion returns the protocol version.
func (b *Bridge) QueryVersion() uint16 {
	b.logger.Debugf("QueryVersion request")
	return api.Version
}

// Binding returns the registered game id, 0 when none.
func (b *Bridge) Binding() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.binding
}

// Observed returns the outcome of the latest poll and whether the segment was
// attached for it. It never touches shared memory.
func (b *Bridge) Observed() (Step, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.mapped
}

// Closed reports whether Close was called.
func (b *Bridge) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Close marks the shared record disabled, unmaps it and closes the log file.
// Later requests report disabled without touching shared memory.
func (b *Bridge) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	b.logger.Debugf("Detach")
	var err error
	if b.registry != nil {
		err = b.registry.Put(ctx, b.region)
	} else {
		err = b.region.Release(ctx)
	}
	b.closeLog()
	return err
}

func (b *Bridge) closeLog() {
	if b.logFile == nil {
		return
	}
	b.logger.SetOutput(nil)
	_ = b.logFile.Close()
	b.logFile = nil
}
