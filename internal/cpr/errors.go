package cpr

import "errors"

// Error taxonomy for CPR decode, per spec.md §4.4/§7. Position decode
// failures are routine (noisy/incomplete pairs) and never propagate as
// anything but one of these tagged values.
var (
	// ErrZoneMismatch means the even and odd frames' computed latitudes
	// fall in different NL zones -- they straddle a latitude-zone
	// boundary and can't be combined; the caller should discard both
	// slots and wait for a fresh pair.
	ErrZoneMismatch = errors.New("cpr: latitude zone mismatch")

	// ErrOutOfRange means a local decode's result is farther than the
	// configured maximum distance from the reference position --
	// outside CPR's unambiguous range for that reference.
	ErrOutOfRange = errors.New("cpr: decoded position out of range")

	// ErrInvalidNL means NL() was asked to classify an out-of-domain
	// latitude (decode produced |lat| > 90).
	ErrInvalidNL = errors.New("cpr: invalid NL zone")

	// ErrStale names a CPR pair whose frames are farther apart in capture
	// time than the configured pairing window. No function returns it:
	// this package never sees frame times, and the tracker simply skips
	// global decode for such a pair.
	ErrStale = errors.New("cpr: pair exceeds pairing window")
)
