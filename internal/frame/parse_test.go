package frame

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go1090/internal/adsb"
	"go1090/internal/icaocache"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestParseDF17Callsign(t *testing.T) {
	cache := icaocache.New(0, 0)
	raw := mustHex(t, "8D4840D6202CC371C32CE0576098")

	f, err := Parse(raw, adsb.CaptureTime{}, nil, cache, true)
	require.NoError(t, err)
	assert.EqualValues(t, 17, f.DF)
	assert.Equal(t, adsb.IcaoAddress(0x4840D6), f.ICAO)
	assert.Equal(t, 0, f.BitsCorrected)
	assert.EqualValues(t, 4, f.TypeCode())
}

func TestParseDF17SingleBitCorrection(t *testing.T) {
	cache := icaocache.New(0, 0)
	raw := mustHex(t, "8D4840D6202CC371C32CE0576098")

	// Flip bit 50 (0-based, MSB-first) to introduce a single-bit error.
	corrupted := append([]byte(nil), raw...)
	byteIdx, bitIdx := 50/8, 7-50%8
	corrupted[byteIdx] ^= 1 << uint(bitIdx)

	// Sanity: the corrupted frame fails CRC outright.
	_, err := Parse(corrupted, adsb.CaptureTime{}, nil, cache, false)
	assert.ErrorIs(t, err, ErrCrcFail)

	f, err := Parse(corrupted, adsb.CaptureTime{}, nil, icaocache.New(0, 0), true)
	require.NoError(t, err)
	assert.Equal(t, adsb.IcaoAddress(0x4840D6), f.ICAO)
	assert.Equal(t, 1, f.BitsCorrected)
}

func TestParseUnknownDF(t *testing.T) {
	cache := icaocache.New(0, 0)
	raw := []byte{0xFF, 0, 0, 0, 0, 0, 0}
	_, err := Parse(raw, adsb.CaptureTime{}, nil, cache, false)
	assert.ErrorIs(t, err, ErrUnknownDF)
}

func TestParseShortBuffer(t *testing.T) {
	cache := icaocache.New(0, 0)
	raw := []byte{0x8D, 0, 0}
	_, err := Parse(raw, adsb.CaptureTime{}, nil, cache, false)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

// TestParseShortFrameICAORecovery builds a synthetic DF4 (surveillance
// altitude reply) frame whose AP field encodes a known ICAO, and checks
// that it's only accepted once that ICAO is in the cache.
func TestParseShortFrameICAORecovery(t *testing.T) {
	icao := adsb.IcaoAddress(0x4840D6)

	data := make([]byte, 7)
	data[0] = 4 << 3 // DF=4
	data[2] = 0x1F   // arbitrary altitude bits
	data[3] = 0xFF

	base := ComputeCRC(data[:4])
	ap := base ^ uint32(icao)
	data[4] = byte(ap >> 16)
	data[5] = byte(ap >> 8)
	data[6] = byte(ap)

	cache := icaocache.New(0, 0)

	_, err := Parse(data, adsb.CaptureTime{}, nil, cache, false)
	assert.ErrorIs(t, err, ErrUnknownICAO)

	cache.Confirm(icao)
	f, err := Parse(data, adsb.CaptureTime{}, nil, cache, false)
	require.NoError(t, err)
	assert.Equal(t, icao, f.ICAO)
	assert.EqualValues(t, 4, f.DF)
}

func TestComputeCRCZeroForValidFrame(t *testing.T) {
	raw := mustHex(t, "8D4840D6202CC371C32CE0576098")
	assert.Zero(t, ComputeCRC(raw))
}

func TestCorrectionRefusesToTouchDFField(t *testing.T) {
	raw := mustHex(t, "8D4840D6202CC371C32CE0576098")
	corrupted := append([]byte(nil), raw...)
	corrupted[0] ^= 1 << 7 // bit 0, inside the DF field

	syndrome := ComputeCRC(corrupted)
	_, ok := correctSingleBit(append([]byte(nil), corrupted...), syndrome)
	assert.False(t, ok)
}
