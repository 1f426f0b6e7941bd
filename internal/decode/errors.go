package decode

import "errors"

// Error taxonomy for field decode, per spec.md §7.
var (
	// ErrGillhamInvalid means a 100-ft Gillham-coded altitude field held
	// an invalid gray-code combination (e.g. an odd D-value) -- altitude
	// is left unset rather than a synthesized guess.
	ErrGillhamInvalid = errors.New("decode: invalid gillham altitude code")

	// ErrUnsupportedTypeCode means a DF17/18 ME type code isn't one this
	// decoder maps to a TypedMessage (e.g. surface position, reserved
	// codes). The frame is dropped, not an error condition worth
	// counting on its own.
	ErrUnsupportedTypeCode = errors.New("decode: unsupported type code")

	// ErrUnsupportedDF means the frame's DF isn't one the field decoder
	// dispatches on.
	ErrUnsupportedDF = errors.New("decode: unsupported downlink format")
)
