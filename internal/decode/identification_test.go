package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDecodeCallsignKLM1023 exercises spec.md §8 scenario 1: frame
// 8D4840D6202CC371C32CE0576098 -> ME 20 2C C3 71 C3 2C E0 -> "KLM1023".
func TestDecodeCallsignKLM1023(t *testing.T) {
	me := []byte{0x20, 0x2C, 0xC3, 0x71, 0xC3, 0x2C, 0xE0}
	assert.Equal(t, "KLM1023", DecodeCallsign(me))
}

func TestDecodeCallsignTrimsTrailingPadding(t *testing.T) {
	// All-zero ME after TC/CA bits produces '#' padding chars that must be
	// trimmed, same as trailing spaces.
	me := []byte{0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	cs := DecodeCallsign(me)
	assert.NotContains(t, cs, "#")
}

func TestCallsignCharUnknownIndexIsHash(t *testing.T) {
	assert.Equal(t, byte('#'), callsignChar(63))
	assert.Equal(t, byte('#'), callsignChar(0))
	assert.Equal(t, byte('A'), callsignChar(1))
}
