package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDecodeGillham100ftIsTotal exercises every one of the 8192 possible
// 13-bit inputs (spec.md §8: "Gillham 100-ft decode is a total function
// over its valid 8,192-input domain"). Every input either decodes to an
// altitude or returns ErrGillhamInvalid -- it never panics and never
// produces a nonsensical result silently.
func TestDecodeGillham100ftIsTotal(t *testing.T) {
	validCount := 0
	for field := 0; field < 8192; field++ {
		alt, err := DecodeGillham100ft(uint16(field))
		if err == nil {
			validCount++
			assert.Equal(t, 0, alt%100, "valid altitude must be a 100-ft multiple, field=%d", field)
		} else {
			assert.ErrorIs(t, err, ErrGillhamInvalid)
		}
	}
	// About a third of the 8192-point domain is valid Gillham (2,560
	// inputs); the rest set D1, clear all of C1/C2/C4, carry a hundreds
	// digit above 5, or decode below -1,200 ft.
	assert.Greater(t, validCount, 0)
	assert.Less(t, validCount, 8192)
}

func TestDecodeGillham100ftKnownValues(t *testing.T) {
	// field=0 has C1..C4 all clear -> invalid (no altitude band selected).
	_, err := DecodeGillham100ft(0)
	assert.ErrorIs(t, err, ErrGillhamInvalid)
}

func TestDecodeSquawkDigits(t *testing.T) {
	// Squawk 7700: A=7,B=7,C=0,D=0. In the identity field A1/A2/A4 are
	// bits 0x0800/0x0200/0x0080 and B1/B2/B4 are 0x0020/0x0008/0x0002.
	field := uint16(0x0800 | 0x0200 | 0x0080 | 0x0020 | 0x0008 | 0x0002)
	assert.Equal(t, uint16(7700), DecodeSquawk(field))

	field = uint16(0)
	assert.Equal(t, uint16(0), DecodeSquawk(field))

	// Squawk 7500: A=7, B=5 (B1 and B4).
	field = uint16(0x0800 | 0x0200 | 0x0080 | 0x0020 | 0x0002)
	assert.Equal(t, uint16(7500), DecodeSquawk(field))
}
