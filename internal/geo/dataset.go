// Package geo resolves region names to coordinates. A built-in dataset covers
// the regions bloom queries actually hit; an optional external client and
// country-center estimates back it up.
package geo

import (
	"sort"
	"strings"
	"unicode"
)

// regionCoordinates maps normalized region names to [longitude, latitude].
var regionCoordinates = map[string][2]float64{
	// India
	"kashmir":           {75.0, 34.0},
	"kashmir valley":    {74.8, 34.1},
	"srinagar":          {74.8, 34.1},
	"kerala":            {76.5, 10.5},
	"munnar":            {77.06, 10.09},
	"ooty":              {76.69, 11.41},
	"uttarakhand":       {79.0, 30.3},
	"valley of flowers": {79.6, 30.7},
	"himalayan":         {80.0, 30.0},
	"western ghats":     {76.0, 15.0},
	"rajasthan":         {73.0, 27.0},
	"tamil nadu":        {78.0, 11.0},
	"karnataka":         {76.0, 15.0},
	"bangalore":         {77.6, 12.97},
	"coorg":             {75.8, 12.4},
	"sikkim":            {88.6, 27.6},
	"assam":             {92.9, 26.2},
	"meghalaya":         {91.4, 25.5},

	// USA
	"california": {-119.4, 36.8},
	"oregon":     {-120.5, 44.0},
	"washington": {-120.7, 47.5},
	"texas":      {-99.9, 31.5},
	"florida":    {-81.5, 28.0},
	"arizona":    {-111.7, 34.5},
	"colorado":   {-105.5, 39.0},
	"new york":   {-75.0, 43.0},
	"vermont":    {-72.6, 44.0},
	"alaska":     {-152.0, 64.0},

	// Japan
	"tokyo":    {139.7, 35.7},
	"kyoto":    {135.8, 35.0},
	"osaka":    {135.5, 34.7},
	"hokkaido": {142.0, 43.0},
	"okinawa":  {127.7, 26.3},

	// Europe
	"provence":    {5.4, 43.9},
	"tuscany":     {11.3, 43.4},
	"andalusia":   {-4.5, 37.5},
	"netherlands": {5.3, 52.1},
	"scotland":    {-4.2, 56.5},

	// China
	"yunnan":   {101.0, 25.0},
	"sichuan":  {103.0, 30.5},
	"tibet":    {91.0, 31.0},
	"xinjiang": {87.0, 43.0},

	// Other
	"amazon":      {-62.0, -3.0},
	"sahara":      {9.0, 23.0},
	"madagascar":  {46.7, -19.0},
	"new zealand": {174.0, -41.0},
}

// countryCenters maps normalized country names to an approximate center.
var countryCenters = map[string][2]float64{
	"india":          {78.0, 22.0},
	"usa":            {-98.0, 39.0},
	"united states":  {-98.0, 39.0},
	"china":          {104.0, 35.0},
	"japan":          {138.0, 36.0},
	"france":         {2.3, 46.6},
	"germany":        {10.4, 51.1},
	"italy":          {12.6, 42.8},
	"spain":          {-3.7, 40.4},
	"uk":             {-3.4, 55.4},
	"united kingdom": {-3.4, 55.4},
	"australia":      {133.8, -25.3},
	"brazil":         {-51.9, -14.2},
	"canada":         {-106.3, 56.1},
	"mexico":         {-102.6, 23.6},
	"russia":         {105.3, 61.5},
	"south africa":   {25.0, -29.0},
	"netherlands":    {5.3, 52.1},
	"switzerland":    {8.2, 46.8},
	"austria":        {14.6, 47.5},
	"norway":         {8.5, 60.5},
	"sweden":         {18.6, 60.1},
	"finland":        {25.7, 61.9},
}

// regionKeys keeps partial-match resolution deterministic.
var regionKeys = sortedKeys(regionCoordinates)

func sortedKeys(m map[string][2]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeName lowercases and strips everything but letters and spaces.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLower(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// datasetLookup resolves a region against the built-in dataset: direct match
// first, then substring match either way, then a country-qualified match.
func datasetLookup(name, country string) ([2]float64, bool) {
	normalized := normalizeName(name)
	if normalized == "" {
		return [2]float64{}, false
	}

	if coords, ok := regionCoordinates[normalized]; ok {
		return coords, true
	}

	for _, key := range regionKeys {
		if strings.Contains(key, normalized) || strings.Contains(normalized, key) {
			return regionCoordinates[key], true
		}
	}

	if country != "" {
		combined := normalized + " " + normalizeName(country)
		for _, key := range regionKeys {
			if strings.Contains(combined, key) || strings.Contains(key, combined) {
				return regionCoordinates[key], true
			}
		}
	}

	return [2]float64{}, false
}

// CountryCenter returns the approximate center of a country, if known.
func CountryCenter(country string) ([2]float64, bool) {
	coords, ok := countryCenters[normalizeName(country)]
	return coords, ok
}
