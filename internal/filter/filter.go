package filter

import (
	"io"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"go1090/internal/adsb"
	"go1090/internal/enrich"
)

type dedupeKey struct {
	kind adsb.AnomalyKind
	a    adsb.IcaoAddress
	b    adsb.IcaoAddress // second participant for proximity; zero otherwise
}

// Engine evaluates the anomaly rule table against tracker snapshots and
// individual aircraft updates, deduplicating repeat emissions per
// (kind, participants) within a configurable window.
type Engine struct {
	cfg    Config
	logger *logrus.Logger

	// lastEmit's window is measured against the logical capture-time clock
	// callers pass in, not wall-clock time, so it can't be handed to
	// go-cache (whose TTL runs off time.Now()) the way internal/icaocache
	// does. It's swept on that same logical clock instead -- see
	// pruneLastEmitLocked -- so it stays bounded across a long capture
	// without depending on wall-clock progress.
	mu        sync.Mutex
	lastEmit  map[dedupeKey]time.Time
	maxWindow time.Duration
	lastPrune time.Time

	// rapidDescentRun and geofenceInside are plain per-ICAO recency state,
	// not tied to the logical clock's value, so they reuse
	// internal/icaocache's github.com/patrickmn/go-cache choice directly:
	// a departed aircraft's entry expires on its own once
	// EvaluateAircraft stops being called for it.
	rapidDescentRun *gocache.Cache
	geofenceInside  *gocache.Cache

	lastProximity time.Time
}

// New builds an Engine. A nil logger discards log output.
func New(cfg Config, logger *logrus.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	maxWindow := DefaultDedupeWindow
	if DefaultEmergencyWindow > maxWindow {
		maxWindow = DefaultEmergencyWindow
	}
	for _, d := range cfg.EmitDedupeWindow {
		if d > maxWindow {
			maxWindow = d
		}
	}
	return &Engine{
		cfg:             cfg,
		logger:          logger,
		lastEmit:        make(map[dedupeKey]time.Time),
		maxWindow:       maxWindow,
		rapidDescentRun: gocache.New(DefaultStateTTL, DefaultStateTTL/2),
		geofenceInside:  gocache.New(DefaultStateTTL, DefaultStateTTL/2),
	}, nil
}

func (e *Engine) shouldEmit(key dedupeKey, now time.Time) bool {
	e.pruneLastEmitLocked(now)

	window := e.cfg.dedupeWindow(key.kind)
	last, ok := e.lastEmit[key]
	if ok && now.Sub(last) < window {
		return false
	}
	e.lastEmit[key] = now
	return true
}

// pruneLastEmitLocked drops dedupe entries whose window has long since
// passed, checked at most once per DefaultDedupeSweepInterval of logical
// time. Must be called with e.mu held.
func (e *Engine) pruneLastEmitLocked(now time.Time) {
	if !e.lastPrune.IsZero() && now.Sub(e.lastPrune) < DefaultDedupeSweepInterval {
		return
	}
	e.lastPrune = now
	for k, t := range e.lastEmit {
		if now.Sub(t) > e.maxWindow {
			delete(e.lastEmit, k)
		}
	}
}

func (e *Engine) emit(kind adsb.AnomalyKind, icao adsb.IcaoAddress, now time.Time, details map[string]any) *adsb.AnomalyEvent {
	key := dedupeKey{kind: kind, a: icao}
	e.mu.Lock()
	ok := e.shouldEmit(key, now)
	e.mu.Unlock()
	if !ok {
		return nil
	}
	return &adsb.AnomalyEvent{Kind: kind, ICAO: icao, OccurredAt: now, Details: details}
}

func (e *Engine) emitPair(kind adsb.AnomalyKind, a, b adsb.IcaoAddress, now time.Time, details map[string]any) *adsb.AnomalyEvent {
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	key := dedupeKey{kind: kind, a: lo, b: hi}
	e.mu.Lock()
	ok := e.shouldEmit(key, now)
	e.mu.Unlock()
	if !ok {
		return nil
	}
	return &adsb.AnomalyEvent{Kind: kind, ICAO: a, OccurredAt: now, Details: details}
}

// EvaluateAircraft runs every single-aircraft detector against one tracked
// aircraft's current state and history, returning any anomalies that
// survive dedupe. Call it once per relevant tracker event so the
// rapid_descent consecutive-report counter reflects one new reading per
// call.
func (e *Engine) EvaluateAircraft(state *adsb.AircraftState, now time.Time) []adsb.AnomalyEvent {
	var out []adsb.AnomalyEvent
	add := func(ev *adsb.AnomalyEvent) {
		if ev != nil {
			out = append(out, *ev)
		}
	}

	if state.Military {
		add(e.emit(adsb.AnomalyMilitary, state.ICAO, now, nil))
	}

	if squawk := state.Squawk; squawk == 7500 || squawk == 7600 || squawk == 7700 {
		add(e.emit(adsb.AnomalyEmergencySquawk, state.ICAO, now, map[string]any{"squawk": squawk}))
	}

	add(e.evaluateRapidDescent(state, now))

	if state.HasAltitude && state.AltitudeFt < LowAltitudeFt && state.GroundSpeedKt > LowAltitudeMinSpeedKt {
		add(e.emit(adsb.AnomalyLowAltitude, state.ICAO, now, map[string]any{
			"altitude_ft": state.AltitudeFt, "ground_speed_kt": state.GroundSpeedKt,
		}))
	}

	if turn, ok := circlingTurn(state.History, now); ok && turn >= CirclingThresholdDeg {
		add(e.emit(adsb.AnomalyCircling, state.ICAO, now, map[string]any{"turn_deg": turn}))
	}

	if isHolding(state.History, now) {
		add(e.emit(adsb.AnomalyHolding, state.ICAO, now, nil))
	}

	if state.HasAltitude && state.AltitudeFt < UnusualAltitudeMaxFt && state.GroundSpeedKt > UnusualAltitudeSpeedKt && state.HasPosition {
		if _, distNM, ok := enrich.NearestAirport(state.Lat, state.Lon); ok && distNM > UnusualAltitudeMinAirportNM {
			add(e.emit(adsb.AnomalyUnusualAltitude, state.ICAO, now, map[string]any{
				"altitude_ft": state.AltitudeFt, "ground_speed_kt": state.GroundSpeedKt, "nearest_airport_nm": distNM,
			}))
		}
	}

	add(e.evaluateGeofences(state, now))

	return out
}

func (e *Engine) evaluateRapidDescent(state *adsb.AircraftState, now time.Time) *adsb.AnomalyEvent {
	key := state.ICAO.String()
	run := 0
	if state.HasVerticalRate && state.VerticalRateFpm <= RapidDescentFpm {
		if v, ok := e.rapidDescentRun.Get(key); ok {
			run = v.(int)
		}
		run++
	}
	e.rapidDescentRun.SetDefault(key, run)

	if run < RapidDescentMinReports {
		return nil
	}
	return e.emit(adsb.AnomalyRapidDescent, state.ICAO, now, map[string]any{
		"vertical_rate_fpm": state.VerticalRateFpm, "consecutive_reports": run,
	})
}

func (e *Engine) evaluateGeofences(state *adsb.AircraftState, now time.Time) *adsb.AnomalyEvent {
	if !state.HasPosition || len(e.cfg.Geofences) == 0 {
		return nil
	}
	key := state.ICAO.String()
	inside := make(map[string]bool)
	if v, ok := e.geofenceInside.Get(key); ok {
		inside = v.(map[string]bool)
	}

	var fired *adsb.AnomalyEvent
	for _, gf := range e.cfg.Geofences {
		dist := haversineNM(state.Lat, state.Lon, gf.CenterLat, gf.CenterLon)
		nowInside := dist <= gf.RadiusNM
		wasInside := inside[gf.ID]
		inside[gf.ID] = nowInside
		if nowInside && !wasInside {
			if ev := e.emit(adsb.AnomalyGeofenceEnter, state.ICAO, now, map[string]any{
				"geofence": gf.ID, "distance_nm": dist,
			}); ev != nil {
				fired = ev
			}
		}
	}
	e.geofenceInside.SetDefault(key, inside)
	return fired
}

// EvaluateProximity runs the pairwise closing-distance detector across a
// full snapshot, throttled to ProximityEvalInterval.
func (e *Engine) EvaluateProximity(snapshot []*adsb.AircraftState, now time.Time) []adsb.AnomalyEvent {
	e.mu.Lock()
	if !e.lastProximity.IsZero() && now.Sub(e.lastProximity) < ProximityEvalInterval {
		e.mu.Unlock()
		return nil
	}
	e.lastProximity = now
	e.mu.Unlock()

	var out []adsb.AnomalyEvent
	for i := 0; i < len(snapshot); i++ {
		a := snapshot[i]
		if !a.HasPosition || !a.HasAltitude {
			continue
		}
		for j := i + 1; j < len(snapshot); j++ {
			b := snapshot[j]
			if !b.HasPosition || !b.HasAltitude {
				continue
			}
			horiz := haversineNM(a.Lat, a.Lon, b.Lat, b.Lon)
			vert := absInt(a.AltitudeFt - b.AltitudeFt)
			if horiz > e.cfg.ProximityHorizontalNM || float64(vert) > e.cfg.ProximityVerticalFt {
				continue
			}
			if ev := e.emitPair(adsb.AnomalyProximity, a.ICAO, b.ICAO, now, map[string]any{
				"other_icao": b.ICAO.String(), "horizontal_nm": horiz, "vertical_ft": vert,
			}); ev != nil {
				out = append(out, *ev)
			}
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
