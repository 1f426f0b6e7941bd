package filter

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"go1090/internal/adsb"
)

const metersPerNM = 1852.0

func haversineNM(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.Distance(orb.Point{lon1, lat1}, orb.Point{lon2, lat2}) / metersPerNM
}

func windowed(history []adsb.HistorySample, now time.Time, window time.Duration) []adsb.HistorySample {
	var out []adsb.HistorySample
	for _, s := range history {
		if now.Sub(s.Time.Wall) <= window {
			out = append(out, s)
		}
	}
	return out
}

func shortestTurn(from, to float64) float64 {
	d := math.Mod(to-from+540, 360) - 180
	return d
}

// circlingTurn sums the shortest-turn heading delta across history samples
// within CirclingWindow of now. A track that keeps turning the same way
// accumulates toward 360°; a straight or back-and-forth track doesn't.
func circlingTurn(history []adsb.HistorySample, now time.Time) (float64, bool) {
	samples := windowed(history, now, CirclingWindow)
	if len(samples) < 3 {
		return 0, false
	}
	sum := 0.0
	for i := 1; i < len(samples); i++ {
		sum += shortestTurn(samples[i-1].HeadingDeg, samples[i].HeadingDeg)
	}
	return math.Abs(sum), true
}

// isHolding reports whether altitude stayed within a narrow band while
// heading oscillated between two roughly opposite values over
// HoldingWindow, the signature of a holding pattern (spec.md §4.6).
func isHolding(history []adsb.HistorySample, now time.Time) bool {
	samples := windowed(history, now, HoldingWindow)
	if len(samples) < 4 {
		return false
	}

	minAlt, maxAlt := samples[0].AltitudeFt, samples[0].AltitudeFt
	var bins [36]int
	for _, s := range samples {
		if s.AltitudeFt < minAlt {
			minAlt = s.AltitudeFt
		}
		if s.AltitudeFt > maxAlt {
			maxAlt = s.AltitudeFt
		}
		bin := int(math.Mod(s.HeadingDeg, 360) / 10)
		if bin < 0 {
			bin += 36
		}
		bins[bin]++
	}
	if maxAlt-minAlt > HoldingAltitudeBandFt {
		return false
	}

	threshold := int(math.Ceil(HoldingModeFraction * float64(len(samples))))
	for i := 0; i < 36; i++ {
		if bins[i] < threshold {
			continue
		}
		for j := 0; j < 36; j++ {
			if bins[j] < threshold {
				continue
			}
			// shortestTurn's result is always in [-180, 180], so its
			// absolute value never exceeds 180: only the lower bound
			// constrains "roughly opposite".
			apart := math.Abs(shortestTurn(float64(i*10), float64(j*10)))
			if apart >= 135 {
				return true
			}
		}
	}
	return false
}
