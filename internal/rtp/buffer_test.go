package rtp_test

import (
	"testing"

	"github.com/raidcore/rtp/internal/rtp"
	"github.com/stretchr/testify/assert"
)

func TestBufferXorInto(t *testing.T) {
	b := rtp.NewBuffer(4)
	assert.True(t, b.IsZero())

	b.XorInto([]byte{0x01, 0x02, 0x03, 0x04})
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, b.Bytes())
	assert.False(t, b.IsZero())

	b.XorInto([]byte{0x01, 0x02, 0x03, 0x04})
	assert.True(t, b.IsZero())
}

func TestBufferCloneIsIndependent(t *testing.T) {
	b := rtp.NewBuffer(2)
	b.XorInto([]byte{0xAA, 0xBB})

	clone := b.Clone()
	assert.True(t, b.Equal(clone))

	clone.XorInto([]byte{0xFF, 0xFF})
	assert.False(t, b.Equal(clone))
}

func TestBufferSlice(t *testing.T) {
	b := rtp.NewBuffer(6)
	copy(b.Slice(2, 2), []byte{0x11, 0x22})
	assert.Equal(t, []byte{0x00, 0x00, 0x11, 0x22, 0x00, 0x00}, b.Bytes())
}
