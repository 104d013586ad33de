// Package scoring implements the five factor scorers and the aggregator
// that combines them into an overall match result. Every scorer is a pure
// function of its inputs and returns a 0-100 score with a structured
// breakdown explaining it.
package scoring

import (
	"math"
	"strings"

	"leasematch/internal/models"
)

// earthRadiusMiles is the radius used for great-circle distances.
const earthRadiusMiles = 3959.0

const (
	locationStateBase      = 40
	locationCityBonus      = 30
	locationProximityBonus = 30
	locationOutsidePenalty = 20
)

// ScoreLocation scores geographic fit. A state mismatch is disqualifying
// and short-circuits to zero.
func ScoreLocation(l models.Listing, req models.LocationRequirement) (out models.LocationScore) {
	out.Weight = models.WeightLocation
	defer func() { out.Weighted = float64(out.Score) * out.Weight }()

	if !strings.EqualFold(l.State, req.State) {
		return out
	}

	score := locationStateBase
	out.Breakdown.StateMatch = true

	if req.City != "" && strings.EqualFold(l.City, req.City) {
		score += locationCityBonus
		out.Breakdown.CityMatch = true
	}

	hasRadius := req.RadiusMiles > 0 && req.CenterLatitude != nil && req.CenterLongitude != nil
	switch {
	case hasRadius && l.Latitude != nil && l.Longitude != nil:
		d := haversineMiles(*l.Latitude, *l.Longitude, *req.CenterLatitude, *req.CenterLongitude)
		out.Breakdown.DistanceMiles = &d
		within := d <= req.RadiusMiles
		out.Breakdown.WithinRadius = &within
		if within {
			score += int(math.Round(locationProximityBonus * (1 - d/req.RadiusMiles)))
		} else {
			score -= locationOutsidePenalty
		}
	case !hasRadius && out.Breakdown.CityMatch:
		// No delineated area to measure against; a city match earns
		// the full proximity bonus.
		score += locationProximityBonus
	}

	out.Score = clampScore(score)
	return out
}

// haversineMiles returns the great-circle distance between two points.
func haversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
