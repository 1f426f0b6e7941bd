package decode

import (
	"math"

	"go1090/internal/adsb"
)

// DecodeVelocity decodes a DF17/18 TC19 airborne velocity ME field, per
// spec.md §4.3.3. Subtypes 1-2 carry a ground-speed vector (east-west /
// north-south components combined into speed and track); subtypes 3-4
// carry airspeed plus an optional magnetic/true heading. Vertical rate is
// common to all four subtypes. Grounded on this codebase's existing
// dump1090-style velocity extraction.
func DecodeVelocity(me []byte) *adsb.AirborneVelocity {
	if len(me) < 7 {
		return nil
	}

	subtype := me[0] & 0x07
	v := &adsb.AirborneVelocity{Subtype: subtype}

	switch subtype {
	case 1, 2:
		ewRaw := getBitsUint16(me, 15, 24)
		nsRaw := getBitsUint16(me, 26, 35)

		if ewRaw != 0 && nsRaw != 0 {
			mult := 1 << (2 * (subtype - 1)) // subtype 1: x1, subtype 2: x4
			ewVel := int(ewRaw-1) * mult
			if getBits(me, 14, 14) != 0 {
				ewVel = -ewVel
			}
			nsVel := int(nsRaw-1) * mult
			if getBits(me, 25, 25) != 0 {
				nsVel = -nsVel
			}

			speed := math.Sqrt(float64(nsVel*nsVel + ewVel*ewVel))
			v.HasGroundSpeed = true
			v.GroundSpeedKt = speed

			if speed > 0 {
				heading := math.Atan2(float64(ewVel), float64(nsVel)) * 180.0 / math.Pi
				if heading < 0 {
					heading += 360
				}
				v.HeadingDeg = heading
			}
		}

	case 3, 4:
		if getBits(me, 14, 14) != 0 {
			v.HasHeading = true
			v.TrueHeading = float64(getBitsUint16(me, 15, 24)) * 360.0 / 1024.0
		}

		airspeedRaw := getBitsUint16(me, 26, 35)
		if airspeedRaw != 0 {
			mult := 1 << (2 * (subtype - 3)) // subtype 3: x1, subtype 4: x4
			v.HasAirspeed = true
			v.AirspeedKt = float64(int(airspeedRaw-1) * mult)
		}

	default:
		return nil
	}

	vrRaw := getBitsUint16(me, 38, 46)
	if vrRaw != 0 {
		rate := int(vrRaw-1) * 64
		if getBits(me, 37, 37) != 0 {
			rate = -rate
		}
		v.HasVerticalRate = true
		v.VerticalRateFpm = rate
		if getBits(me, 36, 36) != 0 {
			v.VerticalRateSrc = adsb.VRSourceGNSS
		} else {
			v.VerticalRateSrc = adsb.VRSourceBaro
		}
	}

	return v
}
