package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryFromICAO(t *testing.T) {
	country, ok := CountryFromICAO(0xA12345)
	assert.True(t, ok)
	assert.Equal(t, "United States", country)

	country, ok = CountryFromICAO(0x400000)
	assert.True(t, ok)
	assert.Equal(t, "United Kingdom", country)

	_, ok = CountryFromICAO(0xFFFFFF)
	assert.False(t, ok)
}

func TestIsMilitary(t *testing.T) {
	assert.True(t, IsMilitary(0xAE0000))  // inside US-allocated-not-civil block
	assert.False(t, IsMilitary(0xA12345)) // ordinary US civil address
}

func TestAirlineFromCallsign(t *testing.T) {
	name, ok := AirlineFromCallsign("KLM1023")
	assert.True(t, ok)
	assert.Equal(t, "KLM Royal Dutch Airlines", name)

	_, ok = AirlineFromCallsign("N12345")
	assert.False(t, ok)

	_, ok = AirlineFromCallsign("zz")
	assert.False(t, ok)
}

func TestIsCargoOperator(t *testing.T) {
	assert.True(t, IsCargoOperator("FDX2112"))
	assert.False(t, IsCargoOperator("KLM1023"))
}

func TestClassifyAircraft(t *testing.T) {
	assert.Equal(t, CategoryMilitary, ClassifyAircraft(true, 10000, 300, 0))
	assert.Equal(t, CategoryJet, ClassifyAircraft(false, 35000, 450, 100))
	assert.Equal(t, CategoryTurboprop, ClassifyAircraft(false, 15000, 200, 100))
	assert.Equal(t, CategoryProp, ClassifyAircraft(false, 5000, 100, 100))
	assert.Equal(t, CategoryUnknown, ClassifyAircraft(false, 0, 0, 0))
}

func TestNearestAirport(t *testing.T) {
	ap, distNM, ok := NearestAirport(52.3, 4.75) // near Schiphol
	assert.True(t, ok)
	assert.Equal(t, "EHAM", ap.ICAO)
	assert.Less(t, distNM, 5.0)
}
