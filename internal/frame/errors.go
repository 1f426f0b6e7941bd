package frame

import "errors"

// Error taxonomy for frame parsing, per spec.md §7. These are normal,
// expected outcomes of decoding noisy radio data -- never panics, never
// logged-and-swallowed inside this package. Callers count and drop.
var (
	// ErrShortBuffer means the candidate bit buffer was too short to hold
	// the message length implied by its DF.
	ErrShortBuffer = errors.New("frame: short buffer")

	// ErrCrcFail means the CRC syndrome was nonzero and no correction
	// (attempted or possible) resolved it.
	ErrCrcFail = errors.New("frame: crc check failed")

	// ErrUncorrectableCrc means correction was attempted (DF17, when
	// enabled) but no single- or two-bit flip reproduced a valid syndrome.
	ErrUncorrectableCrc = errors.New("frame: crc uncorrectable")

	// ErrUnknownDF means the DF value isn't one this decoder supports.
	ErrUnknownDF = errors.New("frame: unsupported downlink format")

	// ErrUnknownICAO means a short frame's AP⊕CRC address recovery
	// produced an address not present in the IcaoCache, so it was
	// dropped rather than risk tracking a CRC-residual phantom.
	ErrUnknownICAO = errors.New("frame: icao not in cache")
)
