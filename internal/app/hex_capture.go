package app

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"strings"
	"time"

	"go1090/internal/adsb"
)

// runHexCapture reads ASCII hex frame lines from path ("-" for stdin) and
// feeds each decoded frame into the shared frame/decode/track/filter
// pipeline, spec.md §6's hex frame mode. This is the format
// rtl_adsb-family tools emit on stdout (see
// _examples/Regentag-go1090/rtl_adsb), generalized here to also accept
// bare hex lines with no "*"/";" wrapper, since spec.md §6 names both as
// valid.
func (app *Application) runHexCapture(path string) error {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	app.logger.WithField("path", path).Info("hex frame capture started")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), 1<<20)

	lines := 0
	for scanner.Scan() {
		select {
		case <-app.ctx.Done():
			return nil
		default:
		}

		line := scanner.Text()
		bits, ok := parseHexFrameLine(line)
		if !ok {
			continue
		}

		lines++
		capture := adsb.CaptureTime{
			Monotonic: time.Duration(lines),
			Wall:      time.Now().UTC(),
		}
		app.processFrameBits(bits, capture, nil)
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	return nil
}

// parseHexFrameLine decodes one rtl_adsb-style hex line: "*HHHH...;"
// (rtl_adsb's own wrapper) or bare "HHHH..." hex, whitespace-trimmed.
// Invalid lines (malformed wrapper, odd hex length, non-hex characters,
// or a decoded length other than 7 or 14 bytes) are reported
// via ok=false so the caller can skip them silently, per spec.md §6.
func parseHexFrameLine(line string) ([]byte, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil, false
	}

	if strings.HasPrefix(s, "*") {
		s = strings.TrimPrefix(s, "*")
		s = strings.TrimSuffix(s, ";")
	}

	if len(s)%2 != 0 {
		return nil, false
	}

	bits, err := hex.DecodeString(s)
	if err != nil {
		return nil, false
	}

	switch len(bits) {
	case 7, 14: // DF short (56 bits) and long (112 bits) Mode S frames
		return bits, true
	default:
		return nil, false
	}
}
