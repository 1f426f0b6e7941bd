package demod

import (
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"go1090/internal/adsb"
)

// Preamble sample offsets, per spec.md §4.1: a Mode S preamble spans 16
// samples at 2 Msps with high energy at these four indices and low
// energy at the other six; indices 10-15 carry no preamble structure and
// aren't checked.
var preambleHighIdx = [4]int{0, 2, 7, 9}
var preambleLowIdx = [6]int{1, 3, 4, 5, 6, 8}

const preambleLen = 16

// thresholdFactor is the minimum ratio (in squared-magnitude terms) by
// which the quietest high sample must exceed the loudest low sample,
// spec.md §4.1 (a): "≥2x".
const thresholdFactor = 2.0

// sixDBRatio bounds how far apart (in power) the four preamble highs may
// be from each other, spec.md §4.1 (b): "within ~6 dB".
var sixDBRatio = math.Pow(10, 6.0/10.0)

// Candidate is a raw bit buffer recovered from the preamble/bit-slicing
// stage, not yet CRC-checked: the input to internal/frame.Parse.
type Candidate struct {
	// Bits is the packed candidate message, 7 bytes (56-bit) or 14 bytes
	// (112-bit), MSB-first.
	Bits []byte

	CaptureTime adsb.CaptureTime
	SignalDBFS  *float64
}

// Demodulator finds Mode S preambles in a magnitude sequence and slices
// PPM bits from the samples that follow. It holds no per-aircraft state;
// only running counters for observability (spec.md §7: "Counters are
// exposed through the snapshot interface").
type Demodulator struct {
	logger *logrus.Logger

	PreamblesFound  uint64
	CandidatesShort uint64
	CandidatesLong  uint64
	DiscardedUnknownDF uint64
}

// New creates a Demodulator. A nil logger defaults to a discard logger so
// the package remains usable as a library without forcing a logging
// policy on callers.
func New(logger *logrus.Logger) *Demodulator {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Demodulator{logger: logger}
}

// bitLenForDF returns the candidate's total bit length once the first 5
// bits (DF) are known, per spec.md §4.1. ok is false for DF values this
// stage doesn't know how to bound, in which case the candidate is
// discarded -- the frame parser's own lengthForDF independently confirms
// this same split once it has the full byte buffer.
func bitLenForDF(df uint8) (bits int, ok bool) {
	switch df {
	case 0, 4, 5, 11:
		return 56, true
	case 16, 17, 18, 20, 21:
		return 112, true
	default:
		return 0, false
	}
}

// checkPreamble reports whether a 16-sample window starting at mag[off]
// matches the Mode S preamble shape, returning the peak (loudest high)
// and floor (mean of the lows) magnitudes used for signal-strength
// estimation.
func checkPreamble(mag []uint32, off int) (peak, floor uint32, ok bool) {
	if off+preambleLen > len(mag) {
		return 0, 0, false
	}

	minHigh := mag[off+preambleHighIdx[0]]
	maxHigh := mag[off+preambleHighIdx[0]]
	for _, idx := range preambleHighIdx[1:] {
		v := mag[off+idx]
		if v < minHigh {
			minHigh = v
		}
		if v > maxHigh {
			maxHigh = v
		}
	}

	var lowSum uint64
	maxLow := mag[off+preambleLowIdx[0]]
	for _, idx := range preambleLowIdx {
		v := mag[off+idx]
		lowSum += uint64(v)
		if v > maxLow {
			maxLow = v
		}
	}
	meanLow := uint32(lowSum / uint64(len(preambleLowIdx)))

	// (a) min high exceeds max low by the threshold factor.
	if maxLow == 0 {
		if minHigh == 0 {
			return 0, 0, false
		}
	} else if float64(minHigh) < thresholdFactor*float64(maxLow) {
		return 0, 0, false
	}

	// (b) the four highs are within ~6dB of each other.
	if minHigh == 0 || float64(maxHigh)/float64(minHigh) > sixDBRatio {
		return 0, 0, false
	}

	// (c) the floor is below half the peak.
	if float64(meanLow) >= float64(maxHigh)/2 {
		return 0, 0, false
	}

	return maxHigh, meanLow, true
}

// sliceBit reads one PPM bit from two consecutive samples: 1 iff the
// first sample exceeds the second, per spec.md §4.1.
func sliceBit(mag []uint32, sampleIdx int) byte {
	if mag[sampleIdx] > mag[sampleIdx+1] {
		return 1
	}
	return 0
}

// packBits packs a count-length slice of 0/1 bit values (MSB-first) into
// bytes, left-padding the final byte with zero bits if count isn't a
// multiple of 8 (it always is here: 56 and 112 are both byte-aligned).
func packBits(bits []byte) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for k := 0; k < 8; k++ {
			b = (b << 1) | bits[i*8+k]
		}
		out[i] = b
	}
	return out
}

// signalDBFS estimates a receiver-style dBFS figure from a candidate's
// peak preamble magnitude, relative to the largest value the 8-bit IQ
// magnitude table can produce.
func signalDBFS(peak uint32) float64 {
	if peak == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(float64(peak)/float64(MaxMagnitude))
}

// Demodulate scans a magnitude sequence for candidate Mode S messages.
// sampleRate is samples/sec (2,000,000 for the 2 Msps rate the bit slicer's
// two samples per bit assume); start anchors capture_time for sample 0 so
// replayed captures decode identically regardless of wall-clock time
// (spec.md §9).
func (d *Demodulator) Demodulate(mag []uint32, sampleRate uint32, start adsb.CaptureTime) []Candidate {
	var out []Candidate

	sampleDur := time.Second / time.Duration(sampleRate)

	j := 0
	for j+preambleLen+10 <= len(mag) {
		peak, _, ok := checkPreamble(mag, j)
		if !ok {
			j++
			continue
		}
		d.PreamblesFound++

		bitBase := j + preambleLen

		// Read the first 5 bits (DF) to learn the candidate's length.
		dfBits := make([]byte, 5)
		for k := 0; k < 5; k++ {
			dfBits[k] = sliceBit(mag, bitBase+2*k)
		}
		var df uint8
		for _, b := range dfBits {
			df = (df << 1) | b
		}

		totalBits, ok := bitLenForDF(df)
		if !ok {
			d.DiscardedUnknownDF++
			j++
			continue
		}

		if bitBase+totalBits*2 > len(mag) {
			// Not enough samples left to complete this candidate; stop
			// scanning rather than slice a truncated message.
			break
		}

		bits := make([]byte, totalBits)
		for k := 0; k < totalBits; k++ {
			bits[k] = sliceBit(mag, bitBase+2*k)
		}
		packed := packBits(bits)

		dbfs := signalDBFS(peak)
		capture := adsb.CaptureTime{
			Monotonic: start.Monotonic + time.Duration(j)*sampleDur,
			Wall:      start.Wall.Add(time.Duration(j) * sampleDur),
		}

		out = append(out, Candidate{
			Bits:        packed,
			CaptureTime: capture,
			SignalDBFS:  &dbfs,
		})

		if totalBits == 56 {
			d.CandidatesShort++
		} else {
			d.CandidatesLong++
		}

		// Overlap policy: advance past the message end, not by one
		// sample, so the same burst isn't re-detected (spec.md §4.1).
		j = bitBase + totalBits*2
	}

	return out
}
