package basestation

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"go1090/internal/adsb"
	"go1090/internal/logging"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	tmpdir, err := os.MkdirTemp("", "basestation_test_*")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpdir) })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	logRotator, err := logging.NewLogRotator(tmpdir, true, logger)
	if err != nil {
		t.Fatalf("failed to create log rotator: %v", err)
	}
	t.Cleanup(func() { logRotator.Close() })

	return NewWriter(logRotator, logger)
}

func readLoggedLines(t *testing.T, w *Writer) []string {
	t.Helper()
	if _, err := w.logRotator.GetWriter(); err != nil {
		t.Fatalf("failed to get writer: %v", err)
	}

	content, err := os.ReadFile(w.logRotator.GetCurrentLogFile())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func TestWriteTrackEventNewAircraft(t *testing.T) {
	w := newTestWriter(t)
	icao := adsb.IcaoAddress(0x4840D6)

	err := w.WriteTrackEvent(adsb.TrackEvent{
		Kind: adsb.EventNewAircraft, ICAO: icao, At: time.Now().UTC(),
		State: &adsb.AircraftState{ICAO: icao},
	})
	if err != nil {
		t.Fatalf("WriteTrackEvent: %v", err)
	}

	lines := readLoggedLines(t, w)
	fields := strings.Split(lines[0], ",")
	if fields[0] != AIR {
		t.Errorf("expected message type AIR, got %s", fields[0])
	}
	if fields[4] != icao.String() {
		t.Errorf("expected hex ident %s, got %s", icao.String(), fields[4])
	}
}

func TestWriteTrackEventPositionUpdate(t *testing.T) {
	w := newTestWriter(t)
	icao := adsb.IcaoAddress(0x40621D)

	err := w.WriteTrackEvent(adsb.TrackEvent{
		Kind: adsb.EventPositionUpdate, ICAO: icao, At: time.Now().UTC(),
		State: &adsb.AircraftState{
			ICAO: icao, HasAltitude: true, AltitudeFt: 38000,
			Lat: 52.2572, Lon: 3.9192,
		},
	})
	if err != nil {
		t.Fatalf("WriteTrackEvent: %v", err)
	}

	lines := readLoggedLines(t, w)
	fields := strings.Split(lines[0], ",")
	if fields[1] != "3" {
		t.Errorf("expected transmission type 3 (airborne position), got %s", fields[1])
	}
	if fields[11] != "38000" {
		t.Errorf("expected altitude 38000, got %s", fields[11])
	}
	if fields[14] != "52.257200" {
		t.Errorf("expected latitude 52.257200, got %s", fields[14])
	}
}

func TestWriteTrackEventSightingUpdateCarriesCallsign(t *testing.T) {
	w := newTestWriter(t)
	icao := adsb.IcaoAddress(0x4840D6)

	err := w.WriteTrackEvent(adsb.TrackEvent{
		Kind: adsb.EventSightingUpdate, ICAO: icao, At: time.Now().UTC(),
		State: &adsb.AircraftState{ICAO: icao, Callsign: "KLM1023 "},
	})
	if err != nil {
		t.Fatalf("WriteTrackEvent: %v", err)
	}

	lines := readLoggedLines(t, w)
	fields := strings.Split(lines[0], ",")
	if fields[10] != "KLM1023" {
		t.Errorf("expected trimmed callsign KLM1023, got %q", fields[10])
	}
}

func TestWriteAnomalyUsesStatusMessageType(t *testing.T) {
	w := newTestWriter(t)
	icao := adsb.IcaoAddress(0x280042)

	err := w.WriteAnomaly(adsb.AnomalyEvent{
		Kind: adsb.AnomalyMilitary, ICAO: icao, OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("WriteAnomaly: %v", err)
	}

	lines := readLoggedLines(t, w)
	fields := strings.Split(lines[0], ",")
	if fields[0] != STA {
		t.Errorf("expected message type STA, got %s", fields[0])
	}
	if fields[10] != string(adsb.AnomalyMilitary) {
		t.Errorf("expected anomaly kind in callsign field, got %q", fields[10])
	}
}
