// Package shm provides lazily attached named shared memory regions for inter-process communication (IPC).
//
// A Region maps a fixed-size named segment on first use and keeps it for the lifetime of the
// owning component. Acquire is idempotent and cheap once mapped, so pollers can call it on every
// iteration. Release runs an optional hook against the still-mapped bytes before unmapping, which
// lets the owner leave a final marker for the peer process.
//
// The package is instrumented with OpenTelemetry metrics and tracing (OTel Go SDK v1.30.0); both
// default to no-op providers.
//
// Example usage:
//
//	region, err := shm.NewRegion(shm.Config{
//	  Name:   "FT_SharedMem",
//	  Size:   108,
//	  Create: true,
//	})
//	mem, err := region.Acquire(ctx)
//	// ...
//	_ = region.Release(ctx)
//
// Platform-specific helpers are in internal/shm. HeapMapper backs regions with process memory for
// tests and simulations.
package shm
