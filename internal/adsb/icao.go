// Package adsb holds the shared domain types passed between the decode-core
// packages: addresses, frames, typed messages, track state, and the events
// the tracker and filter engine emit. It has no I/O and no dependency on
// any other internal package, so every stage of the pipeline can import it
// without creating cycles.
package adsb

import "fmt"

// IcaoAddress is a 24-bit Mode S aircraft address. It is a value type so it
// is never heap-allocated per frame and can be used directly as a map key.
type IcaoAddress uint32

// String renders the address the conventional six hex-digit way, e.g. "4840D6".
func (a IcaoAddress) String() string {
	return fmt.Sprintf("%06X", uint32(a))
}

// Valid reports whether a is a plausible 24-bit address (non-zero; the all-zero
// address is never allocated to a real aircraft).
func (a IcaoAddress) Valid() bool {
	return a != 0 && a <= 0xFFFFFF
}
