// Package enrich implements the stateless classification and lookup
// functions that turn a bare AircraftState into something display-ready:
// aircraft category, airline, country of registration, US N-number, and
// nearest airport. None of these functions touch tracker state; they're
// pure data transforms over static reference tables, grounded on the
// icao2reg-family implementations widely used across the ADS-B ecosystem
// (this codebase's pack includes skarppi-stratux's registrations.go,
// which these functions adapt from a registration-lookup package into a
// Go-native enrichment one).
package enrich

import (
	"fmt"
)

// base34Alphabet is the FAA N-number tail alphabet: 0-9 plus A-Z minus I
// and O (visually ambiguous with 1 and 0).
const base34Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ0123456789"

// civilRegistryStart/End bound the US N-number block; above End the
// address is still a US allocation but not a civil-registry aircraft.
const (
	civilRegistryStart = 0xA00001
	civilRegistryEnd   = 0xADF7C7
	usAllocationEnd    = 0xAFFFFF
)

// NNumberFromICAO implements the FAA's base-34-like reverse mapping from
// a 24-bit Mode S address to its N-number, per spec.md §4.7. Returns
// ("", false) for any address outside the US civil registry block.
func NNumberFromICAO(icao uint32) (string, bool) {
	if icao < civilRegistryStart || icao > usAllocationEnd {
		return "", false
	}
	if icao > civilRegistryEnd {
		return "", false // allocated to the US but not a civil-registry aircraft
	}

	serial := int32(icao - civilRegistryStart)

	a := serial/101711 + 1

	aRemainder := serial % 101711
	b := (aRemainder+9510)/10111 - 1

	bRemainder := (aRemainder + 9510) % 10111
	c := (bRemainder+350)/951 - 1

	cRemainder := (bRemainder + 350) % 951
	var d, e int32

	if b >= 0 && c >= 0 && cRemainder > 600 {
		d = 24 + (cRemainder-601)/35
		e = (cRemainder - 601) % 35
	} else {
		if b < 0 || c < 0 {
			cRemainder -= 350
		}
		d = (cRemainder - 1) / 25
		e = (cRemainder - 1) % 25
		if e < 0 {
			d--
			e += 25
		}
	}

	reg := "N" + fmt.Sprintf("%d", a)
	if b >= 0 {
		reg += fmt.Sprintf("%d", b)
	}
	if b >= 0 && c >= 0 {
		reg += fmt.Sprintf("%d", c)
	}
	if d > -1 {
		reg += string(base34Alphabet[d])
		if e > 0 {
			reg += string(base34Alphabet[e-1])
		}
	}

	return reg, true
}
