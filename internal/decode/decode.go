// Package decode turns a CRC-validated adsb.ModeFrame into a typed
// adsb.TypedMessage: callsigns, CPR-encoded positions, velocity vectors,
// altitudes and squawks, per spec.md §4.3. It has no notion of aircraft
// state or time -- every function here is a pure field decode, grounded
// on this codebase's existing dump1090-style bit extraction
// (internal/app/extraction.go in this repo's prior layout).
package decode

import (
	"go1090/internal/adsb"
)

// Decode dispatches on frame.DF (and, for DF17/18, frame.TypeCode()) to
// produce a TypedMessage. Returns ErrUnsupportedDF/ErrUnsupportedTypeCode
// for frames that carry no field this decoder maps -- DF11 acquisition
// squitters and ES type codes outside the ones spec.md §4.3 names.
func Decode(frame *adsb.ModeFrame) (*adsb.TypedMessage, error) {
	switch frame.DF {
	case 0, 4, 16, 20:
		return decodeSurveillanceAltitude(frame)
	case 5, 21:
		return decodeSurveillanceIdentity(frame)
	case 17, 18:
		return decodeExtendedSquitter(frame)
	default:
		return nil, ErrUnsupportedDF
	}
}

func decodeSurveillanceAltitude(frame *adsb.ModeFrame) (*adsb.TypedMessage, error) {
	if len(frame.Payload) < 4 {
		return nil, ErrUnsupportedDF
	}
	field := (uint16(frame.Payload[2]&0x1F) << 8) | uint16(frame.Payload[3])

	altFt, valid := DecodeAC13Field(field)
	return &adsb.TypedMessage{
		Kind: adsb.KindSurveillanceAltitude,
		ICAO: frame.ICAO,
		Time: frame.CaptureTime,
		SurveillanceAltitude: &adsb.SurveillanceAltitude{
			AltitudeFt:    altFt,
			AltitudeValid: valid,
		},
	}, nil
}

func decodeSurveillanceIdentity(frame *adsb.ModeFrame) (*adsb.TypedMessage, error) {
	if len(frame.Payload) < 4 {
		return nil, ErrUnsupportedDF
	}
	field := (uint16(frame.Payload[2]&0x1F) << 8) | uint16(frame.Payload[3])

	return &adsb.TypedMessage{
		Kind: adsb.KindSurveillanceIdentity,
		ICAO: frame.ICAO,
		Time: frame.CaptureTime,
		SurveillanceIdentity: &adsb.SurveillanceIdentity{
			Squawk: DecodeSquawk(field),
		},
	}, nil
}

func decodeExtendedSquitter(frame *adsb.ModeFrame) (*adsb.TypedMessage, error) {
	if len(frame.Payload) < 11 {
		return nil, ErrUnsupportedDF
	}
	me := frame.Payload[4:11]
	tc := frame.TypeCode()

	switch {
	case tc >= 1 && tc <= 4:
		return &adsb.TypedMessage{
			Kind:           adsb.KindIdentification,
			ICAO:           frame.ICAO,
			Time:           frame.CaptureTime,
			Identification: &adsb.Identification{Callsign: DecodeCallsign(me)},
		}, nil

	case (tc >= 9 && tc <= 18) || (tc >= 20 && tc <= 22):
		return decodeAirbornePosition(frame, me, tc)

	case tc == 19:
		v := DecodeVelocity(me)
		if v == nil {
			return nil, ErrUnsupportedTypeCode
		}
		return &adsb.TypedMessage{
			Kind:             adsb.KindAirborneVelocity,
			ICAO:             frame.ICAO,
			Time:             frame.CaptureTime,
			AirborneVelocity: v,
		}, nil

	case tc == 28:
		return &adsb.TypedMessage{
			Kind: adsb.KindAircraftStatus,
			ICAO: frame.ICAO,
			Time: frame.CaptureTime,
			AircraftStatus: &adsb.AircraftStatus{
				EmergencyCode: getBits(me, 6, 8),
			},
		}, nil

	default:
		return nil, ErrUnsupportedTypeCode
	}
}

func decodeAirbornePosition(frame *adsb.ModeFrame, me []byte, tc uint8) (*adsb.TypedMessage, error) {
	ss := getBits(me, 6, 7)
	nicSupplement := getBits(me, 8, 8)
	altField := getBitsUint16(me, 9, 20)
	format := adsb.CPREven
	if getBits(me, 22, 22) != 0 {
		format = adsb.CPROdd
	}
	// The 17-bit CPR fields exceed getBitsUint16's 16-bit ceiling; pull the
	// top bit separately and combine it with the remaining 16.
	latCPR := uint32(getBitsUint16(me, 24, 39))
	if getBits(me, 23, 23) != 0 {
		latCPR |= 1 << 16
	}
	lonCPR := uint32(getBitsUint16(me, 41, 56))
	if getBits(me, 40, 40) != 0 {
		lonCPR |= 1 << 16
	}

	// TC 20-22 (GNSS airborne position) carries the same 12-bit AC field
	// layout as the barometric TC 9-18 messages -- spec.md §4.3 describes
	// one Q-bit/Gillham rule for both ranges -- so the same extraction
	// applies; only the altitude's source (GNSS height vs. barometric)
	// differs, carried in GNSS below.
	gnss := tc >= 20
	altFt, altValid := DecodeAC12Field(altField)

	return &adsb.TypedMessage{
		Kind: adsb.KindAirbornePosition,
		ICAO: frame.ICAO,
		Time: frame.CaptureTime,
		AirbornePosition: &adsb.AirbornePosition{
			AltitudeFt:         altFt,
			AltitudeValid:      altValid,
			Format:             format,
			CPRLat:             latCPR,
			CPRLon:             lonCPR,
			SurveillanceStatus: ss,
			NICSupplement:      nicSupplement,
			GNSS:               gnss,
		},
	}, nil
}
