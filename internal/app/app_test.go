package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go1090/internal/adsb"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, uint32(DefaultFrequency), cfg.Frequency)
	assert.Equal(t, uint32(DefaultSampleRate), cfg.SampleRate)
	assert.True(t, cfg.EnableCRCCorrection)
}

func TestConfigValidateRejectsNonPositiveTimeouts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StaleTimeoutS = 0

	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "StaleTimeoutS", cfgErr.Field)
}

func TestConfigValidateRejectsPhantomBelowStale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StaleTimeoutS = 500
	cfg.PhantomTimeoutS = 100

	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "PhantomTimeoutS", cfgErr.Field)
}

func TestConfigValidateRejectsOutOfRangeReceiverReference(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HasReceiverReference = true
	cfg.ReceiverLat = 120

	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ReceiverLat", cfgErr.Field)
}

func TestConfigValidateRejectsDuplicateGeofenceIDs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Geofences = []GeofenceConfig{
		{ID: "a", Lat: 1, Lon: 1, RadiusNM: 5},
		{ID: "a", Lat: 2, Lon: 2, RadiusNM: 5},
	}

	err := cfg.Validate()
	require.Error(t, err)
}

func TestTrackerConfigCarriesReceiverReference(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HasReceiverReference = true
	cfg.ReceiverLat = 52.2
	cfg.ReceiverLon = 3.9

	tc := cfg.trackerConfig()
	require.NotNil(t, tc.ReceiverReference)
	assert.InDelta(t, 52.2, tc.ReceiverReference.Lat, 0.0001)
	assert.InDelta(t, 3.9, tc.ReceiverReference.Lon, 0.0001)
}

func TestFilterConfigCarriesGeofencesAndDedupeWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Geofences = []GeofenceConfig{{ID: "zone-a", Lat: 52.3, Lon: 4.76, RadiusNM: 10}}
	cfg.EmitDedupeWindowS = map[string]int{"emergency_squawk": 5}

	fc := cfg.filterConfig()
	require.Len(t, fc.Geofences, 1)
	assert.Equal(t, "zone-a", fc.Geofences[0].ID)
	require.Contains(t, fc.EmitDedupeWindow, adsb.AnomalyEmergencySquawk)
}
