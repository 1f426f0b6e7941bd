package enrich

import "strings"

// airlinePrefixes maps a 3-letter ICAO callsign/operator prefix to an
// airline name, a fixed table per spec.md §4.7. Not exhaustive -- covers
// the carriers common in European/transatlantic ADS-B captures, the
// traffic this codebase's teacher was built to relay.
var airlinePrefixes = map[string]string{
	"KLM": "KLM Royal Dutch Airlines",
	"BAW": "British Airways",
	"AFR": "Air France",
	"DLH": "Lufthansa",
	"UAL": "United Airlines",
	"DAL": "Delta Air Lines",
	"AAL": "American Airlines",
	"SWA": "Southwest Airlines",
	"RYR": "Ryanair",
	"EZY": "easyJet",
	"VLG": "Vueling",
	"IBE": "Iberia",
	"AZA": "ITA Airways",
	"SAS": "Scandinavian Airlines",
	"FIN": "Finnair",
	"SWR": "Swiss International Air Lines",
	"AUA": "Austrian Airlines",
	"TAP": "TAP Air Portugal",
	"THY": "Turkish Airlines",
	"QTR": "Qatar Airways",
	"UAE": "Emirates",
	"ETD": "Etihad Airways",
	"CPA": "Cathay Pacific",
	"SIA": "Singapore Airlines",
	"ANA": "All Nippon Airways",
	"JAL": "Japan Airlines",
	"QFA": "Qantas",
	"ACA": "Air Canada",
	"WJA": "WestJet",
	"FDX": "FedEx Express",
	"UPS": "UPS Airlines",
	"GEC": "Lufthansa Cargo",
	"CLX": "Cargolux",
}

// cargoPrefixes names airline prefixes that are predominantly cargo
// operators -- used by AirlineFromCallsign's category hint, separate
// from ClassifyAircraft's kinematic classification.
var cargoPrefixes = map[string]bool{
	"FDX": true,
	"UPS": true,
	"GEC": true,
	"CLX": true,
}

// AirlineFromCallsign looks up the operator name for a callsign's
// 3-letter ICAO prefix, per spec.md §4.7. Returns ("", false) for
// callsigns that aren't 3-letter-prefixed ICAO flight numbers (private
// registrations typically broadcast their tail number as the callsign
// instead).
func AirlineFromCallsign(callsign string) (string, bool) {
	prefix := callsignPrefix(callsign)
	if prefix == "" {
		return "", false
	}
	name, ok := airlinePrefixes[prefix]
	return name, ok
}

// IsCargoOperator reports whether callsign's ICAO prefix belongs to a
// cargo-only carrier.
func IsCargoOperator(callsign string) bool {
	return cargoPrefixes[callsignPrefix(callsign)]
}

func callsignPrefix(callsign string) string {
	cs := strings.TrimSpace(callsign)
	if len(cs) < 3 {
		return ""
	}
	for _, r := range cs[:3] {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return cs[:3]
}
