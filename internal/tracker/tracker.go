// Package tracker maintains the live, per-ICAO aircraft picture: an
// indexed state map fed by typed messages, CPR even/odd pairing, rolling
// kinematic history, and stale/phantom pruning, per spec.md §4.5. It is
// the core's single-writer subsystem (spec.md §5): Ingest is meant to be
// called from one ingest-lane goroutine at a time, while Snapshot gives
// readers a consistent, independent copy.
package tracker

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go1090/internal/adsb"
	"go1090/internal/cpr"
	"go1090/internal/enrich"
)

// Tracker owns the aircraft state map exclusively; every other subsystem
// receives either an event stream (from Ingest) or an immutable snapshot
// (from Snapshot) -- never a live reference (spec.md §9: "no
// back-references from aircraft to tracker").
type Tracker struct {
	cfg    Config
	logger *logrus.Logger

	mu     sync.RWMutex
	states map[adsb.IcaoAddress]*adsb.AircraftState
}

// New creates a Tracker. A nil logger defaults to logrus.StandardLogger().
func New(cfg Config, logger *logrus.Logger) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Tracker{
		cfg:    cfg,
		logger: logger,
		states: make(map[adsb.IcaoAddress]*adsb.AircraftState),
	}, nil
}

// upsert returns the aircraft's live entry, creating it (and reporting
// creation) if this is the first sighting of icao.
func (t *Tracker) upsert(icao adsb.IcaoAddress, at adsb.CaptureTime) (*adsb.AircraftState, bool) {
	state, ok := t.states[icao]
	if ok {
		return state, false
	}

	country, _ := enrich.CountryFromICAO(uint32(icao))
	registration, _ := enrich.NNumberFromICAO(uint32(icao))

	state = &adsb.AircraftState{
		ICAO:         icao,
		Country:      country,
		Military:     enrich.IsMilitary(uint32(icao)),
		Registration: registration,
		FirstSeen:    at,
	}
	t.states[icao] = state
	return state, true
}

// touch updates the bookkeeping every ingest shares: last-seen time,
// message count, and the sticky military latch (spec.md §4.5
// "Stickiness").
func touch(state *adsb.AircraftState, at adsb.CaptureTime) {
	state.LastSeen = at
	state.MessageCount++
	if !state.Military && enrich.IsMilitary(uint32(state.ICAO)) {
		state.Military = true
	}
}

// Ingest applies one typed message to the tracker, mutating the
// addressed aircraft's state and returning zero or more TrackEvents for
// downstream consumers (spec.md §4.5).
func (t *Tracker) Ingest(msg *adsb.TypedMessage) []adsb.TrackEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, created := t.upsert(msg.ICAO, msg.Time)
	touch(state, msg.Time)

	var events []adsb.TrackEvent
	if created {
		events = append(events, t.event(adsb.EventNewAircraft, state))
	}

	switch msg.Kind {
	case adsb.KindIdentification:
		events = append(events, t.ingestIdentification(state, msg, created)...)
	case adsb.KindAirbornePosition:
		events = append(events, t.ingestPosition(state, msg)...)
	case adsb.KindAirborneVelocity:
		events = append(events, t.ingestVelocity(state, msg)...)
	case adsb.KindSurveillanceAltitude:
		t.ingestSurveillanceAltitude(state, msg)
	case adsb.KindSurveillanceIdentity:
		t.ingestSurveillanceIdentity(state, msg)
	case adsb.KindAircraftStatus:
		// Emergency code is surfaced through Snapshot/filter via Squawk
		// already carrying 7500/7600/7700; AircraftStatus adds no
		// AircraftState field of its own in this spec.
	}

	return events
}

func (t *Tracker) event(kind adsb.TrackEventKind, state *adsb.AircraftState) adsb.TrackEvent {
	return adsb.TrackEvent{
		Kind:  kind,
		ICAO:  state.ICAO,
		At:    state.LastSeen.Wall,
		State: state.Clone(),
	}
}

func (t *Tracker) ingestIdentification(state *adsb.AircraftState, msg *adsb.TypedMessage, created bool) []adsb.TrackEvent {
	id := msg.Identification
	if id.Callsign == state.Callsign {
		return nil
	}
	changed := state.Callsign != ""
	state.Callsign = id.Callsign
	if created || !changed {
		return nil
	}
	return []adsb.TrackEvent{t.event(adsb.EventSightingUpdate, state)}
}

func (t *Tracker) ingestSurveillanceAltitude(state *adsb.AircraftState, msg *adsb.TypedMessage) {
	sa := msg.SurveillanceAltitude
	if sa.AltitudeValid {
		state.AltitudeFt = sa.AltitudeFt
		state.HasAltitude = true
		t.appendHistory(state, msg.Time)
	}
}

func (t *Tracker) ingestSurveillanceIdentity(state *adsb.AircraftState, msg *adsb.TypedMessage) {
	state.Squawk = msg.SurveillanceIdentity.Squawk
}

func (t *Tracker) ingestVelocity(state *adsb.AircraftState, msg *adsb.TypedMessage) []adsb.TrackEvent {
	v := msg.AirborneVelocity
	if v.HasGroundSpeed {
		state.GroundSpeedKt = v.GroundSpeedKt
		state.HeadingDeg = v.HeadingDeg
		state.HasHeading = true
	} else if v.HasHeading {
		state.HeadingDeg = v.TrueHeading
		state.HasHeading = true
		if v.HasAirspeed {
			state.GroundSpeedKt = v.AirspeedKt
		}
	}
	if v.HasVerticalRate {
		state.VerticalRateFpm = v.VerticalRateFpm
		state.HasVerticalRate = true
	}
	t.appendHistory(state, msg.Time)
	return []adsb.TrackEvent{t.event(adsb.EventAircraftUpdate, state)}
}

// ingestPosition implements spec.md §4.5's position-ingest steps 1-4.
func (t *Tracker) ingestPosition(state *adsb.AircraftState, msg *adsb.TypedMessage) []adsb.TrackEvent {
	pos := msg.AirbornePosition
	slot := &adsb.CPRSlot{
		CPRLat:      pos.CPRLat,
		CPRLon:      pos.CPRLon,
		AltitudeFt:  pos.AltitudeFt,
		ReceiveTime: msg.Time,
	}

	var opposite *adsb.CPRSlot
	if pos.Format == adsb.CPREven {
		state.EvenFrame = slot
		opposite = state.OddFrame
	} else {
		state.OddFrame = slot
		opposite = state.EvenFrame
	}

	var events []adsb.TrackEvent
	positioned := false

	if opposite != nil && absDuration(slot.ReceiveTime.Sub(opposite.ReceiveTime)) <= t.cfg.CPRPairWindow {
		var evenSlot, oddSlot *adsb.CPRSlot
		oddMoreRecent := pos.Format == adsb.CPROdd
		if pos.Format == adsb.CPREven {
			evenSlot, oddSlot = slot, opposite
		} else {
			evenSlot, oddSlot = opposite, slot
		}

		result, err := cpr.DecodeGlobal(evenSlot.CPRLat, evenSlot.CPRLon, oddSlot.CPRLat, oddSlot.CPRLon, oddMoreRecent)
		switch err {
		case nil:
			state.Lat, state.Lon = result.Lat, result.Lon
			state.HasPosition = true
			state.LastPositionTime = msg.Time
			state.HasLastPosition = true
			positioned = true
		case cpr.ErrZoneMismatch:
			cprZoneMismatchTotal.Inc()
			state.EvenFrame = nil
			state.OddFrame = nil
		default:
			// CprOutOfRange/CprStale-equivalent failures from the global
			// path: leave the slots in place, try again on the next pair.
		}
	} else if ref, ok := t.localReference(state, msg.Time); ok {
		result, err := cpr.DecodeLocal(ref, pos.CPRLat, pos.CPRLon, pos.Format == adsb.CPROdd, t.cfg.LocalCPRMaxDistanceNM)
		if err == nil {
			state.Lat, state.Lon = result.Lat, result.Lon
			state.HasPosition = true
			state.LastPositionTime = msg.Time
			state.HasLastPosition = true
			positioned = true
		}
	}

	if pos.AltitudeValid {
		state.AltitudeFt = pos.AltitudeFt
		state.HasAltitude = true
	}

	t.appendHistory(state, msg.Time)

	if positioned {
		events = append(events, t.event(adsb.EventPositionUpdate, state))
	}
	return events
}

// localReference returns the position to use for a single-frame local CPR
// decode: the aircraft's own recent position if it has one, else the
// receiver's configured reference (spec.md §4.5 step 3).
func (t *Tracker) localReference(state *adsb.AircraftState, now adsb.CaptureTime) (cpr.Position, bool) {
	if state.HasLastPosition && now.Sub(state.LastPositionTime) <= t.cfg.LocalCPRMaxPositionAge {
		return cpr.Position{Lat: state.Lat, Lon: state.Lon}, true
	}
	if t.cfg.ReceiverReference != nil {
		return *t.cfg.ReceiverReference, true
	}
	return cpr.Position{}, false
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// appendHistory pushes a kinematic sample and evicts anything older than
// adsb.HistoryWindow or past adsb.HistoryCap, per spec.md §3/§4.5.
func (t *Tracker) appendHistory(state *adsb.AircraftState, at adsb.CaptureTime) {
	sample := adsb.HistorySample{
		Time:       at,
		HeadingDeg: state.HeadingDeg,
		AltitudeFt: state.AltitudeFt,
		Lat:        state.Lat,
		Lon:        state.Lon,
		HasPos:     state.HasPosition,
	}
	state.History = append(state.History, sample)

	cutoff := at.Monotonic - adsb.HistoryWindow
	start := 0
	for start < len(state.History) && state.History[start].Time.Monotonic < cutoff {
		start++
	}
	state.History = state.History[start:]

	if len(state.History) > adsb.HistoryCap {
		state.History = state.History[len(state.History)-adsb.HistoryCap:]
	}
}

// Snapshot returns a read-only copy of every tracked aircraft, safe to
// range over without holding any tracker lock (spec.md §5).
func (t *Tracker) Snapshot() []*adsb.AircraftState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*adsb.AircraftState, 0, len(t.states))
	for _, state := range t.states {
		out = append(out, state.Clone())
	}
	return out
}

// Get returns a copy of one aircraft's state, if tracked.
func (t *Tracker) Get(icao adsb.IcaoAddress) (*adsb.AircraftState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	state, ok := t.states[icao]
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

// PruneStale removes every aircraft whose last_seen precedes
// now-StaleTimeout, returning the removed addresses (spec.md §4.5/§8).
func (t *Tracker) PruneStale(now time.Time) []adsb.IcaoAddress {
	t.mu.Lock()
	defer t.mu.Unlock()

	var removed []adsb.IcaoAddress
	for icao, state := range t.states {
		if now.Sub(state.LastSeen.Wall) > t.cfg.StaleTimeout {
			removed = append(removed, icao)
			delete(t.states, icao)
		}
	}
	stalePrunedTotal.Add(float64(len(removed)))
	return removed
}

// PrunePhantoms removes aircraft that have never produced a position,
// after a longer timeout than stale pruning -- spec.md §3's defense
// against CRC-residual false positives that never got confirmed by a
// real position fix.
func (t *Tracker) PrunePhantoms(now time.Time) []adsb.IcaoAddress {
	t.mu.Lock()
	defer t.mu.Unlock()

	var removed []adsb.IcaoAddress
	for icao, state := range t.states {
		if state.HasPosition {
			continue
		}
		if now.Sub(state.FirstSeen.Wall) > t.cfg.PhantomTimeout {
			removed = append(removed, icao)
			delete(t.states, icao)
		}
	}
	phantomPrunedTotal.Add(float64(len(removed)))
	return removed
}

// Len reports the number of currently tracked aircraft.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.states)
}
