// Package api defines the consumer-facing contract of the legacy head tracker client.
package api

// Status is the code every client entry point reports to the game.
type Status int16

const (
	// StatusOK means tracking data is flowing.
	StatusOK Status = 0
	// StatusDisabled means no producer, no registered game, or a stale record.
	StatusDisabled Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Version is the protocol version reported by QueryVersion.
const Version uint16 = 0x0500
