//go:build !linux

package shm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentPathUnavailable(t *testing.T) {
	_, err := SegmentPath("FT_SharedMem")
	assert.ErrorIs(t, err, ErrNoSegmentFile)
}
