package decode

const metersToFeet = 3.28084

// DecodeAC13Field decodes the 13-bit altitude field carried by DF0/4/16/20
// surveillance altitude replies, per spec.md §4.3.2. The M bit selects
// metric vs. feet, and (when M=0) the Q bit selects 25-ft binary vs.
// 100-ft Gillham gray code -- the three-way split mirrors this codebase's
// existing AC12 decode, widened to the 13-bit field's extra M bit.
func DecodeAC13Field(field uint16) (altitudeFt int, valid bool) {
	mBit := field&0x0040 != 0
	qBit := field&0x0010 != 0

	if mBit {
		// Metric altitude reporting is vanishingly rare in deployed Mode S
		// transponders and under-specified by comparison to the feet path;
		// approximate by treating the remaining 12 bits (M removed) as a
		// straight binary meter count.
		n := ((field & 0x1F80) >> 1) | (field & 0x003F)
		return int(float64(n) * metersToFeet), true
	}

	if qBit {
		n := ((field & 0x1F80) >> 2) | ((field & 0x0020) >> 1) | (field & 0x000F)
		return int(n)*25 - 1000, true
	}

	// The 13-bit field already matches DecodeGillham100ft's expected
	// layout bit-for-bit; the M bit sits at the one position
	// decodeID13 never reads, so no rearrangement is needed here (unlike
	// the 12-bit ME field below, which is missing that bit entirely).
	alt, err := DecodeGillham100ft(field)
	if err != nil {
		return 0, false
	}
	return alt, true
}

// DecodeAC12Field decodes the 12-bit altitude field carried by DF17/18
// airborne position ME fields (no M bit -- metric reporting isn't defined
// for extended squitter).
func DecodeAC12Field(field uint16) (altitudeFt int, valid bool) {
	qBit := field&0x0010 != 0

	if qBit {
		n := ((field & 0x0FE0) >> 1) | (field & 0x000F)
		return int(n)*25 - 1000, true
	}

	n13 := ((field & 0x0FC0) << 1) | (field & 0x003F)
	alt, err := DecodeGillham100ft(n13)
	if err != nil {
		return 0, false
	}
	return alt, true
}
