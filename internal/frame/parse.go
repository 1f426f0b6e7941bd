package frame

import (
	"encoding/binary"

	"go1090/internal/adsb"
	"go1090/internal/icaocache"
)

// lengthForDF returns the message byte length implied by a 5-bit DF value,
// and false if the DF isn't one this decoder supports (spec.md §4.1).
func lengthForDF(df uint8) (bytes int, ok bool) {
	switch df {
	case 0, 4, 5, 11:
		return 7, true
	case 16, 17, 18, 20, 21:
		return 14, true
	default:
		return 0, false
	}
}

func be24(b []byte) uint32 {
	var buf [4]byte
	copy(buf[1:], b)
	return binary.BigEndian.Uint32(buf[:]) & 0x00ffffff
}

// Parse validates and, for DF17 when enableCorrection is set, bit-corrects a
// candidate Mode S bit buffer, recovering its ICAO address according to the
// rules in spec.md §4.2. raw must contain at least the bytes implied by its
// DF; extra trailing bytes are ignored.
//
// cache gates short-frame (DF0/4/5/16/20/21) address recovery: the AP⊕CRC
// result is only accepted when already present, and is never itself used to
// populate the cache. DF11/17/18 frames that pass CRC populate the cache.
func Parse(raw []byte, capture adsb.CaptureTime, signalDBFS *float64, cache *icaocache.Cache, enableCorrection bool) (*adsb.ModeFrame, error) {
	if len(raw) < 1 {
		return nil, ErrShortBuffer
	}
	df := (raw[0] >> 3) & 0x1F

	n, ok := lengthForDF(df)
	if !ok {
		return nil, ErrUnknownDF
	}
	if len(raw) < n {
		return nil, ErrShortBuffer
	}

	data := make([]byte, n)
	copy(data, raw[:n])

	bitsCorrected := 0

	switch df {
	case 17, 18:
		crc := ComputeCRC(data)
		if crc != 0 {
			if df != 17 || !enableCorrection {
				return nil, ErrCrcFail
			}
			if bit, ok := correctSingleBit(data, crc); ok {
				bitsCorrected = 1
				_ = bit
			} else if bits, ok := correctTwoBit(data, crc); ok {
				bitsCorrected = 2
				_ = bits
			} else {
				return nil, ErrUncorrectableCrc
			}
			if ComputeCRC(data) != 0 {
				return nil, ErrUncorrectableCrc
			}
		}
		icao := adsb.IcaoAddress(be24(data[1:4]))
		cache.Confirm(icao)
		return &adsb.ModeFrame{
			DF: df, ICAO: icao, Payload: data,
			CaptureTime: capture, SignalDBFS: signalDBFS, BitsCorrected: bitsCorrected,
		}, nil

	case 11:
		crc := ComputeCRC(data)
		// Low 7 bits may carry a nonzero interrogator-code overlay; the
		// address is valid broadcast data only if the upper 17 bits of
		// the residue are clear (spec.md §4.2).
		if crc&0xFFFF80 != 0 {
			return nil, ErrCrcFail
		}
		icao := adsb.IcaoAddress(be24(data[1:4]))
		cache.Confirm(icao)
		return &adsb.ModeFrame{
			DF: df, ICAO: icao, Payload: data,
			CaptureTime: capture, SignalDBFS: signalDBFS,
		}, nil

	default: // 0, 4, 5, 16, 20, 21
		apOffset := n - 3
		crcBase := ComputeCRC(data[:apOffset])
		ap := be24(data[apOffset:])
		icao := adsb.IcaoAddress(ap ^ crcBase)

		if !cache.Contains(icao) {
			return nil, ErrUnknownICAO
		}
		return &adsb.ModeFrame{
			DF: df, ICAO: icao, Payload: data,
			CaptureTime: capture, SignalDBFS: signalDBFS,
		}, nil
	}
}
