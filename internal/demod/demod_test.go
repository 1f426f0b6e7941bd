package demod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go1090/internal/adsb"
)

// buildPreamble appends 16 magnitude samples shaped like a valid Mode S
// preamble: high energy at {0,2,7,9}, low everywhere else.
func buildPreamble() []uint32 {
	mag := make([]uint32, preambleLen)
	for i := range mag {
		mag[i] = 50
	}
	for _, idx := range preambleHighIdx {
		mag[idx] = 1000
	}
	return mag
}

// appendBits appends 2 samples per bit (PPM: bit=1 iff sample[k] >
// sample[k+1]) for each bit, MSB-first, of the given byte buffer.
func appendBits(mag []uint32, data []byte, totalBits int) []uint32 {
	for i := 0; i < totalBits; i++ {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		bit := (data[byteIdx] >> uint(bitIdx)) & 1
		if bit == 1 {
			mag = append(mag, 900, 100)
		} else {
			mag = append(mag, 100, 900)
		}
	}
	return mag
}

func TestDemodulateRecoversDF11ShortMessage(t *testing.T) {
	// DF11 (5 bits = 01011) short message: 01011 followed by 51 more
	// arbitrary bits to fill 56 total.
	want := []byte{0x58, 0x40, 0xD6, 0x20, 0x2C, 0xC3, 0x71}

	mag := buildPreamble()
	mag = appendBits(mag, want, 56)
	// Pad so the scan loop doesn't run past the end mid-preamble-search.
	mag = append(mag, make([]uint32, 32)...)

	d := New(nil)
	candidates := d.Demodulate(mag, 2_400_000, adsb.CaptureTime{})

	require.Len(t, candidates, 1)
	assert.Equal(t, want, candidates[0].Bits)
	assert.EqualValues(t, 1, d.PreamblesFound)
	assert.EqualValues(t, 1, d.CandidatesShort)
}

func TestDemodulateRecoversDF17LongMessage(t *testing.T) {
	want := []byte{0x8D, 0x48, 0x40, 0xD6, 0x20, 0x2C, 0xC3, 0x71, 0xC3, 0x2C, 0xE0, 0x57, 0x60, 0x98}

	mag := buildPreamble()
	mag = appendBits(mag, want, 112)
	mag = append(mag, make([]uint32, 32)...)

	d := New(nil)
	candidates := d.Demodulate(mag, 2_400_000, adsb.CaptureTime{})

	require.Len(t, candidates, 1)
	assert.Equal(t, want, candidates[0].Bits)
	assert.EqualValues(t, 1, d.CandidatesLong)
	require.NotNil(t, candidates[0].SignalDBFS)
	assert.Less(t, *candidates[0].SignalDBFS, 0.0)
}

func TestDemodulateSkipsUnknownDF(t *testing.T) {
	// DF 1 (00001) isn't in the supported set; the candidate is discarded
	// and the scan advances rather than hanging.
	data := []byte{0x08, 0, 0, 0, 0, 0, 0}

	mag := buildPreamble()
	mag = appendBits(mag, data, 56)
	mag = append(mag, make([]uint32, 32)...)

	d := New(nil)
	candidates := d.Demodulate(mag, 2_400_000, adsb.CaptureTime{})

	assert.Empty(t, candidates)
	assert.EqualValues(t, 1, d.DiscardedUnknownDF)
}

func TestDemodulateOverlapAdvancesPastMessage(t *testing.T) {
	want := []byte{0x58, 0x40, 0xD6, 0x20, 0x2C, 0xC3, 0x71}

	// Two back-to-back short messages; the decoder must not re-detect the
	// first message's tail as a second preamble.
	mag := buildPreamble()
	mag = appendBits(mag, want, 56)
	mag = append(mag, buildPreamble()...)
	mag = appendBits(mag, want, 56)
	mag = append(mag, make([]uint32, 32)...)

	d := New(nil)
	candidates := d.Demodulate(mag, 2_400_000, adsb.CaptureTime{})

	require.Len(t, candidates, 2)
	assert.Equal(t, want, candidates[0].Bits)
	assert.Equal(t, want, candidates[1].Bits)
	assert.Greater(t, candidates[1].CaptureTime.Monotonic, candidates[0].CaptureTime.Monotonic)
}

func TestComputeMagnitudeMatchesTable(t *testing.T) {
	iq := []byte{10, 20, 200, 5}
	mag := ComputeMagnitude(iq)
	require.Len(t, mag, 2)
	assert.Equal(t, uint32(10*10+20*20), mag[0])
	assert.Equal(t, uint32(200*200+5*5), mag[1])
}

func TestCaptureTimeAdvancesWithSampleRate(t *testing.T) {
	want := []byte{0x58, 0x40, 0xD6, 0x20, 0x2C, 0xC3, 0x71}
	lead := make([]uint32, 100)
	for i := range lead {
		lead[i] = 50
	}
	mag := append(lead, buildPreamble()...)
	mag = appendBits(mag, want, 56)
	mag = append(mag, make([]uint32, 32)...)

	d := New(nil)
	start := adsb.CaptureTime{Monotonic: 5 * time.Second}
	candidates := d.Demodulate(mag, 2_400_000, start)

	require.Len(t, candidates, 1)
	expectedOffset := time.Duration(100) * (time.Second / 2_400_000)
	assert.Equal(t, start.Monotonic+expectedOffset, candidates[0].CaptureTime.Monotonic)
}
