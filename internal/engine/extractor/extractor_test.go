package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasematch/internal/models"
)

func testSolicitation(title, description string) models.Solicitation {
	return models.Solicitation{
		ID:               "sol-1",
		Number:           "GSA-R11-2026-001",
		Title:            title,
		Description:      description,
		State:            "DC",
		City:             "Washington",
		Zip:              "20001",
		ResponseDeadline: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestExtract_SpaceRange(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMin float64
		wantMax float64
	}{
		{"comma separated range", "The government seeks 25,000 to 50,000 SF of office space", 25000, 50000},
		{"plain range", "Seeking 8000-12000 sq ft", 8000, 12000},
		{"square feet spelled out", "between 30,000 to 45,000 square feet", 30000, 45000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Extract(testSolicitation("Office Space", tt.text))

			require.NotNil(t, req.Space.MinSF)
			require.NotNil(t, req.Space.MaxSF)
			assert.Equal(t, tt.wantMin, *req.Space.MinSF)
			assert.Equal(t, tt.wantMax, *req.Space.MaxSF)
			assert.Nil(t, req.Space.TargetSF)
		})
	}
}

func TestExtract_SpaceSingleValue(t *testing.T) {
	req := Extract(testSolicitation("Office Space", "approximately 40,000 square feet of office space"))

	require.NotNil(t, req.Space.TargetSF)
	require.NotNil(t, req.Space.MinSF)
	require.NotNil(t, req.Space.MaxSF)
	assert.Equal(t, 40000.0, *req.Space.TargetSF)
	assert.InDelta(t, 32000.0, *req.Space.MinSF, 0.001)
	assert.InDelta(t, 48000.0, *req.Space.MaxSF, 0.001)
}

func TestExtract_SpaceDefaults(t *testing.T) {
	req := Extract(testSolicitation("Office Space", "no size information whatsoever"))

	require.NotNil(t, req.Space.MinSF)
	require.NotNil(t, req.Space.MaxSF)
	assert.Equal(t, DefaultMinSF, *req.Space.MinSF)
	assert.Equal(t, DefaultMaxSF, *req.Space.MaxSF)
	assert.Nil(t, req.Space.TargetSF)
}

func TestExtract_ContiguousAndDivisible(t *testing.T) {
	req := Extract(testSolicitation("Office Space", "Space must be contiguous. Divisible space considered."))

	assert.True(t, req.Space.ContiguousRequired)
	assert.True(t, req.Space.DivisibleAccepted)
}

func TestExtract_BuildingClasses(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single class", "Class A office building required", []string{"A"}},
		{"multiple classes", "Class A or Class B space acceptable", []string{"A", "B"}},
		{"a plus", "class a+ space preferred", []string{"A+"}},
		{"no class defaults", "modern office space", []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Extract(testSolicitation("Office Space", tt.text))
			assert.Equal(t, tt.want, req.Building.AcceptableClasses)
		})
	}
}

func TestExtract_Features(t *testing.T) {
	text := "Requires fiber optic connectivity, a loading dock, SCIF space, " +
		"backup power, 24/7 security, and conference facilities."
	req := Extract(testSolicitation("Secure Office", text))

	assert.True(t, req.Building.Features.FiberOptic)
	assert.True(t, req.Building.Features.LoadingDock)
	assert.True(t, req.Building.Features.SCIFCapable)
	assert.True(t, req.Building.Features.BackupPower)
	assert.True(t, req.Building.Features.Security24x7)
	assert.True(t, req.Building.Features.ConferenceSpace)
	assert.False(t, req.Building.Features.Cafeteria)
	assert.False(t, req.Building.Features.DataCenter)
}

func TestExtract_Certifications(t *testing.T) {
	req := Extract(testSolicitation("Green Office", "LEED certified building preferred, Energy Star rated"))

	assert.Contains(t, req.Building.Certifications, "LEED")
	assert.Contains(t, req.Building.Certifications, "Energy Star")
}

func TestExtract_ADAAlwaysRequired(t *testing.T) {
	req := Extract(testSolicitation("Office Space", "no accessibility language at all"))
	assert.True(t, req.Building.ADARequired)
}

func TestExtract_PublicTransit(t *testing.T) {
	req := Extract(testSolicitation("Office Space", "Must be within walking distance of public transportation"))
	assert.True(t, req.Building.PublicTransitPreferred)
}

func TestExtract_TimelineDefaults(t *testing.T) {
	sol := testSolicitation("Office Space", "standard lease")
	req := Extract(sol)

	assert.Equal(t, sol.ResponseDeadline.AddDate(0, DefaultOccupancyOffsetMonths, 0), req.Timeline.OccupancyDate)
	assert.Equal(t, DefaultFirmTermMonths, req.Timeline.FirmTermMonths)
	assert.Equal(t, DefaultTotalTermMonths, req.Timeline.TotalTermMonths)
	assert.Equal(t, sol.ResponseDeadline, req.Timeline.ResponseDeadline)
}

func TestExtract_ExplicitOccupancyDate(t *testing.T) {
	req := Extract(testSolicitation("Office Space", "Occupancy by March 1, 2027 is required"))
	assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), req.Timeline.OccupancyDate)
}

func TestExtract_LeaseTerms(t *testing.T) {
	req := Extract(testSolicitation("Office Space", "10-year firm term within a total term of 15 years"))

	assert.Equal(t, 120, req.Timeline.FirmTermMonths)
	assert.Equal(t, 180, req.Timeline.TotalTermMonths)
}

func TestExtract_LocationFromStructuredFieldsOnly(t *testing.T) {
	sol := testSolicitation("Office Space", "space in Baltimore, MD would be great")
	sol.State = "va"
	sol.City = " Arlington "
	req := Extract(sol)

	// Free text never contributes to location.
	assert.Equal(t, "VA", req.Location.State)
	assert.Equal(t, "Arlington", req.Location.City)
}

func TestRequirement_Viable(t *testing.T) {
	req := Extract(testSolicitation("Office Space", "approximately 20,000 SF"))
	assert.True(t, req.Viable())

	sol := testSolicitation("Office Space", "approximately 20,000 SF")
	sol.State = ""
	assert.False(t, Extract(sol).Viable())
}
