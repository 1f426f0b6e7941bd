// Package cpr implements Compact Position Reporting decode and encode,
// stateless per spec.md §4.4: global decode from a paired even/odd frame,
// local decode from a single frame plus a reference position, and the
// inverse encode used by this package's round-trip tests.
//
// Grounded on the existing dump1090-lineage CPR math already present in
// this codebase's teacher (internal/adsb.CPRDecoder.decodeCPRBothFrames),
// reorganized into pure functions with no aircraft/time state, matching
// spec.md §4.4's "stateless functions" contract.
package cpr

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	// NZ is the number of latitude zones per hemisphere.
	NZ = 15

	// cprMax is 2^17, the divisor for 17-bit encoded CPR values.
	cprMax = 131072.0

	dLatEven = 360.0 / (4 * NZ)       // 6 degrees
	dLatOdd  = 360.0 / (4*NZ - 1)     // ~6.101695 degrees
)

// Position is a decoded geographic coordinate.
type Position struct {
	Lat, Lon float64
}

func modFloat(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

func normalizeLat(lat float64) float64 {
	if lat >= 270 {
		return lat - 360
	}
	return lat
}

func normalizeLon(lon float64) float64 {
	return lon - math.Floor((lon+180)/360)*360
}

// DecodeGlobal reconstructs a position from a paired even and odd CPR
// frame, per spec.md §4.4 steps 1-8. oddIsMoreRecent selects which frame's
// latitude anchors the result (step 5: "pick the more recent frame's
// rlat").
func DecodeGlobal(evenLat, evenLon, oddLat, oddLon uint32, oddIsMoreRecent bool) (Position, error) {
	ye, xe := float64(evenLat), float64(evenLon)
	yo, xo := float64(oddLat), float64(oddLon)

	j := math.Floor((59*ye-60*yo)/cprMax + 0.5)

	rlatEven := normalizeLat(dLatEven * (modFloat(j, 60) + ye/cprMax))
	rlatOdd := normalizeLat(dLatOdd * (modFloat(j, 59) + yo/cprMax))

	if rlatEven < -90 || rlatEven > 90 || rlatOdd < -90 || rlatOdd > 90 {
		return Position{}, ErrInvalidNL
	}

	if NL(rlatEven) != NL(rlatOdd) {
		return Position{}, ErrZoneMismatch
	}

	var rlat float64
	var i int
	var x float64
	if oddIsMoreRecent {
		rlat, i, x = rlatOdd, 1, xo
	} else {
		rlat, i, x = rlatEven, 0, xe
	}

	ni := nFunction(rlat, i)
	m := math.Floor((xe*float64(NL(rlat)-1)-xo*float64(NL(rlat)))/cprMax + 0.5)
	dlon := 360.0 / float64(ni)
	rlon := normalizeLon(dlon * (modFloat(m, float64(ni)) + x/cprMax))

	return Position{Lat: rlat, Lon: rlon}, nil
}

// DecodeLocal reconstructs a position from a single frame plus a reference
// position, per spec.md §4.4. maxDistanceNM bounds how far the result may
// be from ref before it's rejected as outside CPR's unambiguous range.
func DecodeLocal(ref Position, lat, lon uint32, oddFrame bool, maxDistanceNM float64) (Position, error) {
	i := 0
	dLat := dLatEven
	if oddFrame {
		i = 1
		dLat = dLatOdd
	}

	y, x := float64(lat), float64(lon)

	j := math.Floor(ref.Lat/dLat) + math.Floor(0.5+modFloat(ref.Lat, dLat)/dLat-y/cprMax)
	rlat := dLat * (j + y/cprMax)

	if rlat < -90 || rlat > 90 {
		return Position{}, ErrInvalidNL
	}

	ni := nFunction(rlat, i)
	dlon := 360.0 / float64(ni)
	m := math.Floor(ref.Lon/dlon) + math.Floor(0.5+modFloat(ref.Lon, dlon)/dlon-x/cprMax)
	rlon := normalizeLon(dlon * (m + x/cprMax))

	result := Position{Lat: rlat, Lon: rlon}

	distNM := geo.Distance(orb.Point{ref.Lon, ref.Lat}, orb.Point{result.Lon, result.Lat}) / 1852.0
	if distNM > maxDistanceNM {
		return Position{}, ErrOutOfRange
	}

	return result, nil
}

// EncodeCPR re-encodes a position at the given parity, the inverse of
// DecodeGlobal used by this package's round-trip law test (spec.md §8:
// "encode_cpr(decode_cpr_global(e, o)) == (e, o) for every (e, o) pair
// with matching NL").
func EncodeCPR(pos Position, oddFrame bool) (lat, lon uint32) {
	i := 0
	dLat := dLatEven
	if oddFrame {
		i = 1
		dLat = dLatOdd
	}

	yz := math.Floor(cprMax*(modFloat(pos.Lat, dLat)/dLat) + 0.5)
	yz = modFloat(yz, cprMax)

	ni := nFunction(pos.Lat, i)
	dlon := 360.0 / float64(ni)
	xz := math.Floor(cprMax*(modFloat(pos.Lon, dlon)/dlon) + 0.5)
	xz = modFloat(xz, cprMax)

	return uint32(yz), uint32(xz)
}
