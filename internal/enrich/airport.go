package enrich

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Airport is one row of the embedded reference table.
type Airport struct {
	ICAO      string
	Name      string
	Lat, Lon  float64
}

// airportBucketDeg is the grid cell size used to bucket the airport table
// by whole-degree lat/lon, giving NearestAirport an O(candidates-in-a-3x3-
// block) average lookup instead of a full table scan, per spec.md §4.7
// ("implementations may use a bucketed index for O(1) average lookup").
const airportBucketDeg = 1.0

type bucketKey struct{ latCell, lonCell int }

var airportBuckets map[bucketKey][]Airport

func init() {
	airportBuckets = make(map[bucketKey][]Airport, len(airportTable))
	for _, a := range airportTable {
		k := bucketFor(a.Lat, a.Lon)
		airportBuckets[k] = append(airportBuckets[k], a)
	}
}

func bucketFor(lat, lon float64) bucketKey {
	return bucketKey{
		latCell: int(math.Floor(lat / airportBucketDeg)),
		lonCell: int(math.Floor(lon / airportBucketDeg)),
	}
}

// NearestAirport returns the closest airport in the embedded reference
// table to (lat, lon) and its great-circle distance in nautical miles,
// per spec.md §4.7. Searches the 3x3 block of buckets around the query
// point first and only falls back to a full scan if that block is empty
// (true near the poles or over open ocean far from any bucketed entry).
func NearestAirport(lat, lon float64) (Airport, float64, bool) {
	center := bucketFor(lat, lon)
	candidates := make([]Airport, 0, 8)
	for dLat := -1; dLat <= 1; dLat++ {
		for dLon := -1; dLon <= 1; dLon++ {
			k := bucketKey{center.latCell + dLat, center.lonCell + dLon}
			candidates = append(candidates, airportBuckets[k]...)
		}
	}
	if len(candidates) == 0 {
		candidates = airportTable
	}
	if len(candidates) == 0 {
		return Airport{}, 0, false
	}

	point := orb.Point{lon, lat}
	best := candidates[0]
	bestDist := geo.Distance(point, orb.Point{best.Lon, best.Lat})
	for _, a := range candidates[1:] {
		d := geo.Distance(point, orb.Point{a.Lon, a.Lat})
		if d < bestDist {
			best, bestDist = a, d
		}
	}

	return best, bestDist / 1852.0, true
}
