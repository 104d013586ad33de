package scoring

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leasematch/internal/models"
)

var scoredAt = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func strongListing() models.Listing {
	return models.Listing{
		ID:            "lst-1",
		BrokerID:      "brk-1",
		City:          "Washington",
		State:         "DC",
		AvailableSF:   40000,
		Contiguous:    true,
		BuildingClass: "A",
		ADACompliant:  true,
		PublicTransit: true,
		Features:      models.BuildingFeatures{FiberOptic: true},
		AvailableFrom: scoredAt.AddDate(0, 0, 30),
	}
}

func strongRequirement() models.Requirement {
	return models.Requirement{
		SolicitationID: "sol-1",
		Location:       models.LocationRequirement{State: "DC", City: "Washington"},
		Space:          models.SpaceRequirement{MinSF: ptr(25000), MaxSF: ptr(50000)},
		Building: models.BuildingRequirement{
			AcceptableClasses: []string{"A", "B"},
			ADARequired:       true,
			Features:          models.BuildingFeatures{FiberOptic: true},
		},
		Timeline: models.TimelineRequirement{
			OccupancyDate: scoredAt.AddDate(0, 0, 150),
		},
	}
}

func fullProfile() models.ExperienceProfile {
	return models.ExperienceProfile{
		GovernmentLeases:    5,
		GovernmentCertified: true,
		References:          3,
		BuildToSuit:         true,
		TenantImprovements:  true,
	}
}

func TestWeightsSumToOne(t *testing.T) {
	sum := models.WeightLocation + models.WeightSpace + models.WeightBuilding +
		models.WeightTimeline + models.WeightExperience
	assert.Equal(t, 1.0, sum)
}

func TestScoreMatch_StrongPair(t *testing.T) {
	result := ScoreMatch(strongListing(), strongRequirement(), fullProfile(), scoredAt)

	// location 100, space 100, building 75, timeline 100, experience 100
	// -> 30 + 25 + 15 + 15 + 10 = 95.
	assert.Equal(t, 95, result.OverallScore)
	assert.Equal(t, models.GradeA, result.Grade)
	assert.True(t, result.Qualified)
	assert.True(t, result.Competitive)
	assert.Empty(t, result.Disqualifiers)
	assert.NotEmpty(t, result.Strengths)
	assert.Equal(t, "lst-1", result.ListingID)
	assert.Equal(t, "sol-1", result.SolicitationID)
	assert.Equal(t, scoredAt, result.ScoredAt)
}

func TestScoreMatch_StateMismatchDisqualifies(t *testing.T) {
	listing := strongListing()
	listing.State = "MD"

	result := ScoreMatch(listing, strongRequirement(), fullProfile(), scoredAt)

	assert.Equal(t, 0, result.Location.Score)
	assert.False(t, result.Qualified)
	assert.False(t, result.Competitive)
	assert.Contains(t, result.Disqualifiers, DisqualifierStateMismatch)
}

func TestScoreMatch_ADADisqualifies(t *testing.T) {
	listing := strongListing()
	listing.ADACompliant = false
	// Even with the class unknown the ADA gate still applies.
	listing.BuildingClass = ""

	result := ScoreMatch(listing, strongRequirement(), fullProfile(), scoredAt)

	assert.False(t, result.Qualified)
	assert.Contains(t, result.Disqualifiers, DisqualifierADA)
}

func TestScoreMatch_SCIFDisqualifies(t *testing.T) {
	req := strongRequirement()
	req.Building.Features.SCIFCapable = true

	result := ScoreMatch(strongListing(), req, fullProfile(), scoredAt)

	assert.False(t, result.Qualified)
	assert.Contains(t, result.Disqualifiers, DisqualifierSCIF)
}

func TestScoreMatch_DeepSpaceShortfallDisqualifies(t *testing.T) {
	listing := strongListing()
	listing.AvailableSF = 30000

	req := strongRequirement()
	req.Space = models.SpaceRequirement{MinSF: ptr(50000)}

	result := ScoreMatch(listing, req, fullProfile(), scoredAt)

	assert.False(t, result.Qualified)
	assert.Contains(t, result.Disqualifiers, DisqualifierSpaceShort)
	assert.NotEmpty(t, result.Recommendations)
}

func TestScoreMatch_QualifiedButNotCompetitive(t *testing.T) {
	listing := strongListing()
	listing.City = ""
	listing.BuildingClass = "C"
	listing.Features = models.BuildingFeatures{}
	listing.AvailableFrom = strongRequirement().Timeline.OccupancyDate.AddDate(0, 0, 20)

	result := ScoreMatch(listing, strongRequirement(), models.ExperienceProfile{}, scoredAt)

	assert.True(t, result.Qualified)
	assert.Less(t, result.OverallScore, models.CompetitiveThreshold)
	assert.False(t, result.Competitive)
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, models.GradeA},
		{85, models.GradeA},
		{84, models.GradeB},
		{70, models.GradeB},
		{69, models.GradeC},
		{55, models.GradeC},
		{54, models.GradeD},
		{40, models.GradeD},
		{39, models.GradeF},
		{0, models.GradeF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gradeFor(tt.score), "score %d", tt.score)
	}
}

func TestScoreMatch_OverallAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		listing := models.Listing{
			ID:            "lst-r",
			State:         []string{"DC", "VA", "MD"}[rng.Intn(3)],
			City:          []string{"Washington", "Arlington", ""}[rng.Intn(3)],
			AvailableSF:   float64(rng.Intn(100000)),
			TotalSF:       float64(rng.Intn(100000)),
			Contiguous:    rng.Intn(2) == 0,
			BuildingClass: []string{"A", "B", "C", ""}[rng.Intn(4)],
			ADACompliant:  rng.Intn(2) == 0,
			PublicTransit: rng.Intn(2) == 0,
			AvailableFrom: scoredAt.AddDate(0, 0, rng.Intn(400)-100),
		}
		req := models.Requirement{
			SolicitationID: "sol-r",
			Location:       models.LocationRequirement{State: "DC", City: "Washington"},
			Space: models.SpaceRequirement{
				MinSF:              ptr(float64(rng.Intn(50000) + 1)),
				ContiguousRequired: rng.Intn(2) == 0,
			},
			Building: models.BuildingRequirement{
				AcceptableClasses: []string{"A", "B"},
				ADARequired:       true,
			},
			Timeline: models.TimelineRequirement{
				OccupancyDate:   scoredAt.AddDate(0, 0, rng.Intn(300)),
				FirmTermMonths:  120,
				TotalTermMonths: 240,
			},
		}
		profile := models.ExperienceProfile{
			GovernmentLeases: rng.Intn(10),
			References:       rng.Intn(5),
		}

		result := ScoreMatch(listing, req, profile, scoredAt)

		assert.GreaterOrEqual(t, result.OverallScore, 0)
		assert.LessOrEqual(t, result.OverallScore, 100)
		assert.NotEmpty(t, result.Grade)
	}
}
