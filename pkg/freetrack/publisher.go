package freetrack

import "sync"

// DefaultCountdown is the number of consumer polls a single publication stays
// live for, five seconds at a 60 Hz poll rate.
const DefaultCountdown int32 = 300

// Publisher is the producer side of the record. It is what a tracking
// application does with each new pose; the bridge tests and the probe's
// simulator use it in place of one.
type Publisher struct {
	mu        sync.Mutex
	state     State
	table     [TableSize]byte
	countdown int32
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithTable sets the obfuscation table published next to every pose.
func WithTable(t [TableSize]byte) PublisherOption {
	return func(p *Publisher) { p.table = t }
}

// WithCountdown sets the countdown stored with every pose. Values below 1 are ignored.
func WithCountdown(n int32) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.countdown = n
		}
	}
}

// NewPublisher returns a Publisher writing into mem.
func NewPublisher(mem []byte, opts ...PublisherOption) (*Publisher, error) {
	st, err := View(mem)
	if err != nil {
		return nil, err
	}
	p := &Publisher{state: st, countdown: DefaultCountdown}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// State returns the record being published.
func (p *Publisher) State() State { return p.state }

// Publish writes sample for the game currently registered in GameId.
//
// GameId2 is broken first so a reader racing the write sees an inconsistent
// record, then the pose and table are written, GameId2 is restored to GameId
// and finally the countdown is stored atomically.
func (p *Publisher) Publish(sample PoseSample) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.state.GameID()
	p.state.SetGameID2(^id)
	p.state.SetPose(sample)
	p.state.SetTable(p.table)
	p.state.SetGameID2(id)
	p.state.StoreCountdown(p.countdown)
}

// Reset asks the consumer to zero its pose on the next poll.
func (p *Publisher) Reset() {
	p.state.StoreCountdown(CountdownReset)
}

// Disable marks the record as not running.
func (p *Publisher) Disable() {
	p.state.Disable()
}
