package decode

import "strings"

// callsignCharset is the ICAO 6-bit callsign alphabet used by DF17/18 TC
// 1-4 identification messages, per spec.md §4.3: 1-26 are letters, 32 is
// a space and 48-57 are digits; index 0 and 27-31, 33-47 and 58-63 are
// unused and render as '#'.
const callsignCharset = "#ABCDEFGHIJKLMNOPQRSTUVWXYZ##### ###############0123456789######"

func callsignChar(code uint8) byte {
	if int(code) >= len(callsignCharset) {
		return '#'
	}
	return callsignCharset[code]
}

// DecodeCallsign extracts the 8-character callsign from a DF17/18 TC 1-4
// ME field, 6 bits per character starting at ME bit 9, grounded on this
// codebase's existing dump1090-style extraction.
func DecodeCallsign(me []byte) string {
	if len(me) < 7 {
		return ""
	}

	var raw [8]byte
	raw[0] = callsignChar(getBits(me, 9, 14))
	raw[1] = callsignChar(getBits(me, 15, 20))
	raw[2] = callsignChar(getBits(me, 21, 26))
	raw[3] = callsignChar(getBits(me, 27, 32))
	raw[4] = callsignChar(getBits(me, 33, 38))
	raw[5] = callsignChar(getBits(me, 39, 44))
	raw[6] = callsignChar(getBits(me, 45, 50))
	raw[7] = callsignChar(getBits(me, 51, 56))

	return strings.TrimRight(string(raw[:]), "# ")
}
