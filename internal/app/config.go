package app

import (
	"errors"
	"fmt"
	"time"

	"go1090/internal/adsb"
	"go1090/internal/cpr"
	"go1090/internal/filter"
	"go1090/internal/tracker"
)

// Default configuration constants.
const (
	DefaultFrequency  = 1090000000 // 1090 MHz
	DefaultSampleRate = 2000000    // 2 MHz: two samples per Mode S bit
	DefaultGain       = 40         // Manual gain

	DefaultStaleTimeoutS        = 300
	DefaultPhantomTimeoutS      = 3600
	DefaultCPRPairWindowS       = 10
	DefaultLocalCPRMaxDistanceNM = 180.0
	DefaultProximityHorizontalNM = 5.0
	DefaultProximityVerticalFt   = 1000.0
)

// GeofenceConfig is one configured circular alert region.
type GeofenceConfig struct {
	ID       string
	Lat      float64
	Lon      float64
	RadiusNM float64
}

// Config holds application configuration: the teacher's RTL-SDR-only
// fields plus every tunable the tracker and filter stages expose.
type Config struct {
	Frequency   uint32
	SampleRate  uint32
	Gain        int
	DeviceIndex int
	LogDir      string
	LogRotateUTC bool
	Verbose     bool

	ReceiverLat, ReceiverLon, ReceiverAltFt float64
	HasReceiverReference                    bool

	StaleTimeoutS          int
	PhantomTimeoutS        int
	CPRPairWindowS         int
	LocalCPRMaxDistanceNM  float64
	ProximityHorizontalNM  float64
	ProximityVerticalFt    float64
	EmitDedupeWindowS      map[string]int
	Geofences              []GeofenceConfig
	EnableCRCCorrection    bool

	// BeastListenAddr, when non-empty, starts a second capture path that
	// accepts Beast-protocol connections (e.g. "localhost:30005")
	// alongside RTL-SDR/IQ capture.
	BeastListenAddr string

	// HexInputPath, when non-empty, reads rtl_adsb-style hex frame lines
	// instead of opening the RTL-SDR dongle (spec.md §6's hex frame
	// mode). "-" reads from stdin; any other value is treated as a file
	// path. Mutually exclusive with RTL-SDR capture: setting this skips
	// dongle initialization entirely.
	HexInputPath string
}

// ConfigError wraps a config validation failure, naming the offending
// field so a CLI caller can report something actionable.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config field %q: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

var errNonPositive = errors.New("must be positive")
var errOutOfRange = errors.New("out of range")
var errMissingID = errors.New("missing id")

// DefaultConfig returns spec.md §6's defaults with no receiver reference
// and no configured geofences.
func DefaultConfig() Config {
	return Config{
		Frequency:             DefaultFrequency,
		SampleRate:            DefaultSampleRate,
		Gain:                  DefaultGain,
		StaleTimeoutS:         DefaultStaleTimeoutS,
		PhantomTimeoutS:       DefaultPhantomTimeoutS,
		CPRPairWindowS:        DefaultCPRPairWindowS,
		LocalCPRMaxDistanceNM: DefaultLocalCPRMaxDistanceNM,
		ProximityHorizontalNM: DefaultProximityHorizontalNM,
		ProximityVerticalFt:   DefaultProximityVerticalFt,
		EnableCRCCorrection:   true,
	}
}

// Validate rejects a config the application can't safely run with.
func (c Config) Validate() error {
	if c.StaleTimeoutS <= 0 {
		return &ConfigError{Field: "StaleTimeoutS", Err: errNonPositive}
	}
	if c.PhantomTimeoutS <= 0 {
		return &ConfigError{Field: "PhantomTimeoutS", Err: errNonPositive}
	}
	if c.PhantomTimeoutS < c.StaleTimeoutS {
		return &ConfigError{Field: "PhantomTimeoutS", Err: errOutOfRange}
	}
	if c.CPRPairWindowS <= 0 {
		return &ConfigError{Field: "CPRPairWindowS", Err: errNonPositive}
	}
	if c.LocalCPRMaxDistanceNM <= 0 {
		return &ConfigError{Field: "LocalCPRMaxDistanceNM", Err: errNonPositive}
	}
	if c.ProximityHorizontalNM <= 0 {
		return &ConfigError{Field: "ProximityHorizontalNM", Err: errNonPositive}
	}
	if c.ProximityVerticalFt <= 0 {
		return &ConfigError{Field: "ProximityVerticalFt", Err: errNonPositive}
	}
	if c.HasReceiverReference {
		if c.ReceiverLat < -90 || c.ReceiverLat > 90 {
			return &ConfigError{Field: "ReceiverLat", Err: errOutOfRange}
		}
		if c.ReceiverLon < -180 || c.ReceiverLon > 180 {
			return &ConfigError{Field: "ReceiverLon", Err: errOutOfRange}
		}
	}
	seen := make(map[string]bool, len(c.Geofences))
	for _, g := range c.Geofences {
		if g.ID == "" {
			return &ConfigError{Field: "Geofences", Err: errMissingID}
		}
		if g.RadiusNM <= 0 {
			return &ConfigError{Field: "Geofences[" + g.ID + "].RadiusNM", Err: errNonPositive}
		}
		if seen[g.ID] {
			return &ConfigError{Field: "Geofences[" + g.ID + "]", Err: errors.New("duplicate id")}
		}
		seen[g.ID] = true
	}
	return nil
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

func cprReference(lat, lon float64) cpr.Position {
	return cpr.Position{Lat: lat, Lon: lon}
}

// trackerConfig translates the flat application config into the
// tracker's own Config shape.
func (c Config) trackerConfig() tracker.Config {
	cfg := tracker.DefaultConfig()
	cfg.StaleTimeout = secondsToDuration(c.StaleTimeoutS)
	cfg.PhantomTimeout = secondsToDuration(c.PhantomTimeoutS)
	cfg.CPRPairWindow = secondsToDuration(c.CPRPairWindowS)
	cfg.LocalCPRMaxDistanceNM = c.LocalCPRMaxDistanceNM
	if c.HasReceiverReference {
		ref := cprReference(c.ReceiverLat, c.ReceiverLon)
		cfg.ReceiverReference = &ref
	}
	return cfg
}

// filterConfig translates the flat application config into the filter
// engine's own Config shape.
func (c Config) filterConfig() filter.Config {
	cfg := filter.DefaultConfig()
	cfg.ProximityHorizontalNM = c.ProximityHorizontalNM
	cfg.ProximityVerticalFt = c.ProximityVerticalFt
	for _, g := range c.Geofences {
		cfg.Geofences = append(cfg.Geofences, filter.Geofence{
			ID: g.ID, CenterLat: g.Lat, CenterLon: g.Lon, RadiusNM: g.RadiusNM,
		})
	}
	if len(c.EmitDedupeWindowS) > 0 {
		cfg.EmitDedupeWindow = make(map[adsb.AnomalyKind]time.Duration, len(c.EmitDedupeWindowS))
		for kind, seconds := range c.EmitDedupeWindowS {
			cfg.EmitDedupeWindow[adsb.AnomalyKind(kind)] = secondsToDuration(seconds)
		}
	}
	return cfg
}
