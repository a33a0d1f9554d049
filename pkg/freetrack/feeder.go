/*
 * Copyright 2025 SREDiag Authors
 * Copyright 2023 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package freetrack

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	queuepkg "github.com/Workiva/go-datastructures/queue"
)

// ErrFeederClosed is returned by Offer after Run returned.
var ErrFeederClosed = errors.New("feeder closed")

// default cap is 64 samples, rounded up to a power of two by the ring.
const defaultFeederCap = 64

// pollTimeout bounds a take that raced another taker for the last item.
const pollTimeout = time.Millisecond

// Feeder decouples a sample source from the publish rate. Sources Offer
// samples without blocking, displacing the oldest pending one when the ring is
// full; Run publishes the newest pending sample on every tick and drops the
// older ones.
type Feeder struct {
	pub     *Publisher
	ring    *queuepkg.RingBuffer
	dropped atomic.Uint64
	sent    atomic.Uint64
}

// NewFeeder returns a Feeder publishing through pub. capacity <= 0 selects the default.
func NewFeeder(pub *Publisher, capacity int) *Feeder {
	if capacity <= 0 {
		capacity = defaultFeederCap
	}
	return &Feeder{
		pub:  pub,
		ring: queuepkg.NewRingBuffer(uint64(capacity)),
	}
}

// Offer queues sample without blocking. When the ring is full the oldest
// pending sample is dropped to make room, and Offer reports false.
func (f *Feeder) Offer(sample PoseSample) (bool, error) {
	displaced := false
	for {
		ok, err := f.ring.Offer(sample)
		if err != nil {
			return false, f.closedErr(err)
		}
		if ok {
			return !displaced, nil
		}
		// a concurrent Flush may empty the ring first; the timeout covers that race
		if _, err := f.ring.Poll(pollTimeout); err == nil {
			f.dropped.Add(1)
			displaced = true
		} else if !errors.Is(err, queuepkg.ErrTimeout) {
			return false, f.closedErr(err)
		}
	}
}

func (f *Feeder) closedErr(err error) error {
	if errors.Is(err, queuepkg.ErrDisposed) {
		return ErrFeederClosed
	}
	return err
}

// Pending returns the number of queued samples.
func (f *Feeder) Pending() int {
	return int(f.ring.Len())
}

// Dropped returns how many samples were rejected or superseded.
func (f *Feeder) Dropped() uint64 { return f.dropped.Load() }

// Published returns how many samples reached the record.
func (f *Feeder) Published() uint64 { return f.sent.Load() }

// Flush publishes the newest pending sample, if any, and reports whether it did.
func (f *Feeder) Flush() bool {
	var (
		latest PoseSample
		got    bool
	)
	// Offer evicts concurrently, so Len > 0 does not guarantee an item is left
	for f.ring.Len() > 0 {
		item, err := f.ring.Poll(pollTimeout)
		if err != nil {
			break
		}
		if got {
			f.dropped.Add(1)
		}
		latest, got = item.(PoseSample), true
	}
	if got {
		f.pub.Publish(latest)
		f.sent.Add(1)
	}
	return got
}

// Run flushes every interval until ctx is done, then disposes the ring.
func (f *Feeder) Run(ctx context.Context, interval time.Duration) error {
	defer f.ring.Dispose()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f.Flush()
		}
	}
}
