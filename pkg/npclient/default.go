package npclient

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/srediag/plugin-npclient/api"
	"github.com/srediag/plugin-npclient/pkg/shm"
)

// The static entry points below serve callers that cannot hold a *Bridge,
// such as exported C symbols. They share one lazily built bridge configured
// from the environment.

var (
	defaultMu      sync.Mutex
	defaultBridge  *Bridge
	defaultMetrics = sync.OnceValue(func() *Metrics {
		return NewMetrics(prometheus.DefaultRegisterer)
	})
)

// Default returns the process-wide bridge, creating it on first use. An
// invalid environment falls back to DefaultConfig.
func Default() *Bridge {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBridge != nil {
		return defaultBridge
	}
	cfg, err := LoadConfig()
	if err != nil {
		cfg = DefaultConfig()
	}
	opts := []Option{WithRegistry(shm.DefaultRegistry), WithMetrics(defaultMetrics())}
	b, berr := NewBridge(cfg, opts...)
	if berr != nil {
		b, _ = NewBridge(DefaultConfig(), opts...)
	}
	if err != nil {
		b.logger.Warnf("%v, using defaults", err)
	}
	defaultBridge = b
	return b
}

// GetData answers a data request into dst, which must hold PacketSize bytes.
func GetData(dst []byte) api.Status {
	pkt, _ := Default().GetData(context.Background())
	copy(dst, pkt.Wire[:])
	return pkt.Status
}

// QueryVersion returns the protocol version.
func QueryVersion() uint16 {
	return Default().QueryVersion()
}

// RegisterProgramProfileID binds the default bridge to a game id.
func RegisterProgramProfileID(id uint16) {
	Default().RegisterProgramProfileID(context.Background(), id)
}

// Shutdown closes the default bridge. The next call to any entry point builds a new one.
func Shutdown() error {
	defaultMu.Lock()
	b := defaultBridge
	defaultBridge = nil
	defaultMu.Unlock()
	if b == nil {
		return nil
	}
	return b.Close(context.Background())
}
