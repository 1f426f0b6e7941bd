package adsb

import "time"

// CaptureTime pairs a monotonic source-provided timestamp with the wall-clock
// time it was observed, per spec.md §3. CPR pairing and ordering use Monotonic;
// Wall is carried only for display/logging.
type CaptureTime struct {
	Monotonic time.Duration
	Wall      time.Time
}

// Before reports whether c occurred strictly before other, using the
// monotonic component so replayed captures decode identically regardless
// of when they're replayed (spec.md §9).
func (c CaptureTime) Before(other CaptureTime) bool {
	return c.Monotonic < other.Monotonic
}

// Sub returns c - other as a duration, using the monotonic component.
func (c CaptureTime) Sub(other CaptureTime) time.Duration {
	return c.Monotonic - other.Monotonic
}

// MessageLength is the bit length of a Mode S message body.
type MessageLength int

const (
	ShortMessageBits MessageLength = 56
	LongMessageBits  MessageLength = 112
)

// ModeFrame is a CRC-checked (and possibly bit-corrected) Mode S frame,
// the output of internal/frame and the input to internal/decode.
//
// Invariant: the CRC syndrome was zero, or was resolved by a <=2-bit flip
// that did not touch bits 0-4 (the DF field). See internal/frame.Parse.
type ModeFrame struct {
	DF          uint8 // 5-bit Downlink Format, 0-31
	ICAO        IcaoAddress
	Payload     []byte // 7 bytes (short) or 14 bytes (long)
	CaptureTime CaptureTime
	SignalDBFS  *float64 // optional receiver-reported signal strength

	// BitsCorrected is the number of bits CRC error-correction flipped to
	// validate this frame (0, 1, or 2).
	BitsCorrected int
}

// Long reports whether the frame carries a 112-bit payload.
func (f *ModeFrame) Long() bool {
	return len(f.Payload) >= 11
}

// TypeCode returns the 5-bit ME type code for DF17/18 frames, or 0 otherwise.
func (f *ModeFrame) TypeCode() uint8 {
	if f.DF != 17 && f.DF != 18 {
		return 0
	}
	if len(f.Payload) < 5 {
		return 0
	}
	return (f.Payload[4] >> 3) & 0x1F
}
