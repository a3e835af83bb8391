package gtrends

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCountry is returned when a trending subject names no known country.
var ErrUnknownCountry = errors.New("unknown country")

// countryCodes maps snake_case country names to ISO 3166 codes.
var countryCodes = map[string]string{
	"argentina":      "AR",
	"australia":      "AU",
	"austria":        "AT",
	"belgium":        "BE",
	"brazil":         "BR",
	"canada":         "CA",
	"chile":          "CL",
	"colombia":       "CO",
	"czechia":        "CZ",
	"denmark":        "DK",
	"egypt":          "EG",
	"finland":        "FI",
	"france":         "FR",
	"germany":        "DE",
	"greece":         "GR",
	"hong_kong":      "HK",
	"hungary":        "HU",
	"india":          "IN",
	"indonesia":      "ID",
	"ireland":        "IE",
	"israel":         "IL",
	"italy":          "IT",
	"japan":          "JP",
	"kenya":          "KE",
	"malaysia":       "MY",
	"mexico":         "MX",
	"netherlands":    "NL",
	"new_zealand":    "NZ",
	"nigeria":        "NG",
	"norway":         "NO",
	"philippines":    "PH",
	"poland":         "PL",
	"portugal":       "PT",
	"romania":        "RO",
	"russia":         "RU",
	"saudi_arabia":   "SA",
	"singapore":      "SG",
	"south_africa":   "ZA",
	"south_korea":    "KR",
	"spain":          "ES",
	"sweden":         "SE",
	"switzerland":    "CH",
	"taiwan":         "TW",
	"thailand":       "TH",
	"turkey":         "TR",
	"ukraine":        "UA",
	"united_kingdom": "GB",
	"united_states":  "US",
	"vietnam":        "VN",
}

// GeoCode resolves a country subject ("united_states", "United States" or
// "US") to its two-letter code.
func GeoCode(country string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(country))
	key = strings.ReplaceAll(key, " ", "_")

	if code, ok := countryCodes[key]; ok {
		return code, nil
	}

	upper := strings.ToUpper(key)
	for _, code := range countryCodes {
		if code == upper {
			return code, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCountry, country)
}
