package app

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexFrameLineRtlAdsbStyle(t *testing.T) {
	bits, ok := parseHexFrameLine("*8D4840D6202CC371C32CE0576098;")
	require.True(t, ok)
	want, err := hex.DecodeString("8D4840D6202CC371C32CE0576098")
	require.NoError(t, err)
	assert.Equal(t, want, bits)
}

func TestParseHexFrameLineBareHex(t *testing.T) {
	bits, ok := parseHexFrameLine("8D4840D6202CC371C32CE0576098")
	require.True(t, ok)
	assert.Len(t, bits, 14)
}

func TestParseHexFrameLineShortFrame(t *testing.T) {
	bits, ok := parseHexFrameLine("*5d4840d6a73cba;")
	require.True(t, ok)
	assert.Len(t, bits, 7)
}

func TestParseHexFrameLineTrimsWhitespace(t *testing.T) {
	bits, ok := parseHexFrameLine("  *8D4840D6202CC371C32CE0576098;\r\n")
	require.True(t, ok)
	assert.Len(t, bits, 14)
}

func TestParseHexFrameLineRejectsOddLength(t *testing.T) {
	_, ok := parseHexFrameLine("8D4840D6202CC371C32CE057609")
	assert.False(t, ok)
}

func TestParseHexFrameLineRejectsNonHex(t *testing.T) {
	_, ok := parseHexFrameLine("*ZZZZZZZZZZZZZZZZZZZZZZZZZZZZ;")
	assert.False(t, ok)
}

func TestParseHexFrameLineRejectsUnsupportedLength(t *testing.T) {
	_, ok := parseHexFrameLine("*8D4840D6;")
	assert.False(t, ok)
}

func TestParseHexFrameLineRejectsEmpty(t *testing.T) {
	_, ok := parseHexFrameLine("")
	assert.False(t, ok)

	_, ok = parseHexFrameLine("   ")
	assert.False(t, ok)
}
