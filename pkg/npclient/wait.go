package npclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"

	"github.com/srediag/plugin-npclient/pkg/shm"
)

// ErrDisabled reports that the producer marked the record as not running.
var ErrDisabled = errors.New("producer disabled")

// WaitRunning polls until a request reports running, sleeping per bo between
// attempts, and returns the first running packet. It gives up when bo stops
// or ctx ends and returns the reason of the last failed poll.
//
// Game clients never need this; it serves tools that start before the producer.
func (b *Bridge) WaitRunning(ctx context.Context, bo backoff.BackOff) (Packet, error) {
	var pkt Packet
	op := func() error {
		p, step, mapped := b.poll(ctx)
		switch {
		case step.Running():
			pkt = p
			return nil
		case !mapped:
			return shm.ErrMappingUnavailable
		case step.Phase == PhaseNoSession:
			return ErrIdentityMismatch
		default:
			return ErrDisabled
		}
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return Packet{}, fmt.Errorf("wait for producer: %w", err)
	}
	return pkt, nil
}
