package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go1090/internal/adsb"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	return e
}

func baseState(icao adsb.IcaoAddress) *adsb.AircraftState {
	return &adsb.AircraftState{ICAO: icao}
}

func TestEvaluateAircraftMilitaryDedupes(t *testing.T) {
	e := newTestEngine(t)
	s := baseState(0x280042)
	s.Military = true

	now := time.Unix(0, 0).UTC()
	events := e.EvaluateAircraft(s, now)
	require.Len(t, events, 1)
	assert.Equal(t, adsb.AnomalyMilitary, events[0].Kind)

	// Re-evaluating within the dedupe window produces nothing new.
	events = e.EvaluateAircraft(s, now.Add(1*time.Second))
	assert.Empty(t, events)

	events = e.EvaluateAircraft(s, now.Add(DefaultDedupeWindow+time.Second))
	require.Len(t, events, 1)
}

func TestEvaluateAircraftEmergencySquawkUsesShortWindow(t *testing.T) {
	e := newTestEngine(t)
	s := baseState(0x4840D6)
	s.Squawk = 7700

	now := time.Unix(0, 0).UTC()
	events := e.EvaluateAircraft(s, now)
	require.Len(t, events, 1)
	assert.Equal(t, adsb.AnomalyEmergencySquawk, events[0].Kind)

	events = e.EvaluateAircraft(s, now.Add(5*time.Second))
	assert.Empty(t, events)

	events = e.EvaluateAircraft(s, now.Add(DefaultEmergencyWindow+time.Second))
	require.Len(t, events, 1)
}

func TestEvaluateAircraftRapidDescentNeedsConsecutiveReports(t *testing.T) {
	e := newTestEngine(t)
	s := baseState(0x485020)
	s.HasVerticalRate = true
	s.VerticalRateFpm = -6000

	now := time.Unix(0, 0).UTC()
	events := e.EvaluateAircraft(s, now)
	assert.Empty(t, events, "a single report shouldn't fire rapid_descent")

	events = e.EvaluateAircraft(s, now.Add(time.Second))
	require.Len(t, events, 1)
	assert.Equal(t, adsb.AnomalyRapidDescent, events[0].Kind)
}

func TestEvaluateAircraftRapidDescentResetsOnRecovery(t *testing.T) {
	e := newTestEngine(t)
	s := baseState(0x485021)
	s.HasVerticalRate = true
	s.VerticalRateFpm = -6000

	now := time.Unix(0, 0).UTC()
	e.EvaluateAircraft(s, now)
	s.VerticalRateFpm = -100
	e.EvaluateAircraft(s, now.Add(time.Second))
	s.VerticalRateFpm = -6000
	events := e.EvaluateAircraft(s, now.Add(2*time.Second))
	assert.Empty(t, events, "the counter should have reset after the recovered reading")
}

func TestEvaluateAircraftLowAltitude(t *testing.T) {
	e := newTestEngine(t)
	s := baseState(0x400001)
	s.HasAltitude = true
	s.AltitudeFt = 300
	s.GroundSpeedKt = 180

	events := e.EvaluateAircraft(s, time.Unix(0, 0).UTC())
	require.Len(t, events, 1)
	assert.Equal(t, adsb.AnomalyLowAltitude, events[0].Kind)
}

func TestEvaluateAircraftLowAltitudeIgnoresSlowTraffic(t *testing.T) {
	e := newTestEngine(t)
	s := baseState(0x400002)
	s.HasAltitude = true
	s.AltitudeFt = 300
	s.GroundSpeedKt = 10 // taxiing, not flying low

	events := e.EvaluateAircraft(s, time.Unix(0, 0).UTC())
	assert.Empty(t, events)
}

func TestCirclingDetectsSustainedTurn(t *testing.T) {
	now := time.Unix(300, 0).UTC()
	s := baseState(0x400003)
	for i := 0; i <= 8; i++ {
		s.History = append(s.History, adsb.HistorySample{
			Time:       adsb.CaptureTime{Wall: now.Add(-time.Duration(8-i) * 20 * time.Second)},
			HeadingDeg: float64(i * 45 % 360),
		})
	}

	e := newTestEngine(t)
	events := e.EvaluateAircraft(s, now)
	var kinds []adsb.AnomalyKind
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Contains(t, kinds, adsb.AnomalyCircling)
}

func TestCirclingIgnoresStraightTrack(t *testing.T) {
	now := time.Unix(300, 0).UTC()
	s := baseState(0x400004)
	for i := 0; i <= 8; i++ {
		s.History = append(s.History, adsb.HistorySample{
			Time:       adsb.CaptureTime{Wall: now.Add(-time.Duration(8-i) * 20 * time.Second)},
			HeadingDeg: 90,
		})
	}

	turn, ok := circlingTurn(s.History, now)
	require.True(t, ok)
	assert.Less(t, turn, CirclingThresholdDeg)
}

func TestHoldingDetectsBimodalHeadingWithStableAltitude(t *testing.T) {
	now := time.Unix(300, 0).UTC()
	var history []adsb.HistorySample
	headings := []float64{10, 190, 12, 188, 8, 192, 11, 189}
	for i, h := range headings {
		history = append(history, adsb.HistorySample{
			Time:       adsb.CaptureTime{Wall: now.Add(-time.Duration(len(headings)-i) * 15 * time.Second)},
			HeadingDeg: h,
			AltitudeFt: 8000,
		})
	}
	assert.True(t, isHolding(history, now))
}

func TestHoldingRejectsClimbingTrack(t *testing.T) {
	now := time.Unix(300, 0).UTC()
	var history []adsb.HistorySample
	headings := []float64{10, 190, 12, 188, 8, 192, 11, 189}
	for i, h := range headings {
		history = append(history, adsb.HistorySample{
			Time:       adsb.CaptureTime{Wall: now.Add(-time.Duration(len(headings)-i) * 15 * time.Second)},
			HeadingDeg: h,
			AltitudeFt: 8000 + i*1000,
		})
	}
	assert.False(t, isHolding(history, now))
}

func TestEvaluateAircraftUnusualAltitudeFarFromAirport(t *testing.T) {
	e := newTestEngine(t)
	s := baseState(0x400005)
	s.HasAltitude = true
	s.AltitudeFt = 2000
	s.GroundSpeedKt = 350
	s.HasPosition = true
	// Middle of the North Atlantic: far from any airport in the table.
	s.Lat, s.Lon = 45.0, -30.0

	events := e.EvaluateAircraft(s, time.Unix(0, 0).UTC())
	require.Len(t, events, 1)
	assert.Equal(t, adsb.AnomalyUnusualAltitude, events[0].Kind)
}

func TestEvaluateGeofenceEnterFiresOnTransitionOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Geofences = []Geofence{{ID: "zone-a", CenterLat: 52.3, CenterLon: 4.76, RadiusNM: 10}}
	e, err := New(cfg, nil)
	require.NoError(t, err)

	s := baseState(0x400006)
	s.HasPosition = true
	s.Lat, s.Lon = 60.0, 10.0 // well outside

	now := time.Unix(0, 0).UTC()
	events := e.EvaluateAircraft(s, now)
	assert.Empty(t, events)

	s.Lat, s.Lon = 52.3, 4.76 // now inside
	events = e.EvaluateAircraft(s, now.Add(time.Second))
	require.Len(t, events, 1)
	assert.Equal(t, adsb.AnomalyGeofenceEnter, events[0].Kind)

	// Staying inside doesn't re-fire.
	events = e.EvaluateAircraft(s, now.Add(2*time.Second))
	assert.Empty(t, events)
}

func TestEvaluateProximityDetectsCloseAircraft(t *testing.T) {
	e := newTestEngine(t)
	a := baseState(0x400007)
	a.HasPosition, a.HasAltitude = true, true
	a.Lat, a.Lon, a.AltitudeFt = 52.30, 4.76, 10000

	b := baseState(0x400008)
	b.HasPosition, b.HasAltitude = true, true
	b.Lat, b.Lon, b.AltitudeFt = 52.31, 4.77, 10500

	now := time.Unix(0, 0).UTC()
	events := e.EvaluateProximity([]*adsb.AircraftState{a, b}, now)
	require.Len(t, events, 1)
	assert.Equal(t, adsb.AnomalyProximity, events[0].Kind)
}

func TestEvaluateProximityThrottlesToInterval(t *testing.T) {
	e := newTestEngine(t)
	a := baseState(0x400009)
	a.HasPosition, a.HasAltitude = true, true
	a.Lat, a.Lon, a.AltitudeFt = 52.30, 4.76, 10000

	b := baseState(0x40000A)
	b.HasPosition, b.HasAltitude = true, true
	b.Lat, b.Lon, b.AltitudeFt = 52.31, 4.77, 10500

	now := time.Unix(0, 0).UTC()
	events := e.EvaluateProximity([]*adsb.AircraftState{a, b}, now)
	require.Len(t, events, 1)

	events = e.EvaluateProximity([]*adsb.AircraftState{a, b}, now.Add(time.Second))
	assert.Empty(t, events, "a re-run inside ProximityEvalInterval should be skipped entirely")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProximityHorizontalNM = 0
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidateRejectsDuplicateGeofenceIDs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Geofences = []Geofence{
		{ID: "a", CenterLat: 1, CenterLon: 1, RadiusNM: 5},
		{ID: "a", CenterLat: 2, CenterLon: 2, RadiusNM: 5},
	}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
