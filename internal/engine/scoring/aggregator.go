package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"leasematch/internal/models"
)

// Disqualifier strings surfaced on the match result. Any one of them
// forces qualified=false.
const (
	DisqualifierStateMismatch = "listing is outside the required state"
	DisqualifierSpaceShort    = "available space is more than 20% below the required minimum"
	DisqualifierADA           = "ADA accessibility is required but not met"
	DisqualifierSCIF          = "SCIF capability is required but not available"
)

// ScoreMatch runs all five factor scorers for one (listing, requirement)
// pair and aggregates them into a MatchResult. The profile argument is the
// broker experience profile to score; callers substitute their configured
// default when the listing has none.
func ScoreMatch(l models.Listing, req models.Requirement, profile models.ExperienceProfile, now time.Time) models.MatchResult {
	result := models.MatchResult{
		ListingID:      l.ID,
		SolicitationID: req.SolicitationID,
		Location:       ScoreLocation(l, req.Location),
		Space:          ScoreSpace(l, req.Space),
		Building:       ScoreBuilding(l, req.Building),
		Timeline:       ScoreTimeline(l, req.Timeline, now),
		Experience:     ScoreExperience(profile),
		ScoredAt:       now,
	}

	overall := result.Location.Weighted +
		result.Space.Weighted +
		result.Building.Weighted +
		result.Timeline.Weighted +
		result.Experience.Weighted
	result.OverallScore = clampScore(int(math.Round(overall)))
	result.Grade = gradeFor(result.OverallScore)

	result.Disqualifiers = disqualifiers(l, req, result)
	result.Qualified = len(result.Disqualifiers) == 0
	result.Competitive = result.Qualified && result.OverallScore >= models.CompetitiveThreshold

	buildInsights(&result)
	return result
}

func gradeFor(score int) string {
	switch {
	case score >= 85:
		return models.GradeA
	case score >= 70:
		return models.GradeB
	case score >= 55:
		return models.GradeC
	case score >= 40:
		return models.GradeD
	default:
		return models.GradeF
	}
}

func disqualifiers(l models.Listing, req models.Requirement, r models.MatchResult) []string {
	var out []string

	if r.Location.Score == 0 {
		out = append(out, DisqualifierStateMismatch)
	}
	if sp := r.Space.Breakdown.ShortfallPct; sp != nil && *sp > 20 {
		out = append(out, DisqualifierSpaceShort)
	}
	if req.Building.ADARequired && !l.ADACompliant {
		out = append(out, DisqualifierADA)
	}
	if req.Building.Features.SCIFCapable && !l.Features.SCIFCapable {
		out = append(out, DisqualifierSCIF)
	}

	return out
}

// buildInsights derives canned strength/weakness/recommendation strings
// from factor scores and breakdown fields.
func buildInsights(r *models.MatchResult) {
	if r.Location.Score >= 90 {
		r.Strengths = append(r.Strengths, "excellent location fit for the delineated area")
	} else if r.Location.Score > 0 && r.Location.Score < 50 {
		r.Weaknesses = append(r.Weaknesses, "location is a weak fit within the required state")
	}
	if d := r.Location.Breakdown.DistanceMiles; d != nil && r.Location.Breakdown.WithinRadius != nil && !*r.Location.Breakdown.WithinRadius {
		r.Weaknesses = append(r.Weaknesses, fmt.Sprintf("%.1f miles outside the delineated area", *d))
	}

	if r.Space.Score == 100 {
		r.Strengths = append(r.Strengths, "space requirements fully met")
	}
	if !r.Space.Breakdown.MeetsMinimum {
		r.Weaknesses = append(r.Weaknesses, "available space is below the required minimum ("+r.Space.Breakdown.Note+")")
		r.Recommendations = append(r.Recommendations, "verify rentable square footage or pair with adjacent space to close the shortfall")
	}
	if !r.Space.Breakdown.ContiguousOK {
		r.Weaknesses = append(r.Weaknesses, "cannot offer the required contiguous block")
	}

	if r.Building.Score >= 80 {
		r.Strengths = append(r.Strengths, "building quality and amenities exceed requirements")
	}
	if !r.Building.Breakdown.ADAMet && r.Building.Breakdown.ClassKnown {
		r.Weaknesses = append(r.Weaknesses, "ADA accessibility requirement not met")
	}
	if missing := r.Building.Breakdown.FeaturesMissing; len(missing) > 0 {
		r.Weaknesses = append(r.Weaknesses, "missing required features: "+strings.Join(missing, ", "))
	}

	if r.Timeline.Breakdown.AvailableOnTime {
		if r.Timeline.Breakdown.BufferDays >= 90 {
			r.Strengths = append(r.Strengths, "available well ahead of the required occupancy date")
		}
	} else {
		r.Weaknesses = append(r.Weaknesses, fmt.Sprintf("available %d days after the required occupancy date", -r.Timeline.Breakdown.BufferDays))
	}

	if r.Experience.Breakdown.GovernmentLeases >= 5 {
		r.Strengths = append(r.Strengths, "broker has an extensive government lease track record")
	}
	if !r.Experience.Breakdown.HasGovernmentLeases {
		r.Recommendations = append(r.Recommendations, "no prior government leases; highlight comparable institutional tenant experience in the offer")
	}

	if r.Competitive {
		r.Recommendations = append(r.Recommendations, "competitive candidate; prioritize offer preparation before the response deadline")
	}
}

