package models

import "time"

// Requirement is the normalized ask extracted from one solicitation. It is
// derived and read-only: recomputed on every extraction, never mutated.
type Requirement struct {
	SolicitationID string              `json:"solicitationId"`
	Location       LocationRequirement `json:"location"`
	Space          SpaceRequirement    `json:"space"`
	Building       BuildingRequirement `json:"building"`
	Timeline       TimelineRequirement `json:"timeline"`
}

type LocationRequirement struct {
	State           string   `json:"state"` // mandatory; empty means unscoreable
	City            string   `json:"city,omitempty"`
	CenterLatitude  *float64 `json:"centerLatitude,omitempty"`
	CenterLongitude *float64 `json:"centerLongitude,omitempty"`
	RadiusMiles     float64  `json:"radiusMiles,omitempty"`
}

type SpaceRequirement struct {
	MinSF              *float64 `json:"minSf,omitempty"`
	MaxSF              *float64 `json:"maxSf,omitempty"`
	TargetSF           *float64 `json:"targetSf,omitempty"`
	ContiguousRequired bool     `json:"contiguousRequired"`
	DivisibleAccepted  bool     `json:"divisibleAccepted"`
}

// EffectiveMinimum is the smallest area that plausibly satisfies the
// requirement: the explicit minimum when present, or 80% of the target
// when only a single value was extracted. Returns 0, false when the
// requirement carries no size information at all.
func (s SpaceRequirement) EffectiveMinimum() (float64, bool) {
	if s.MinSF != nil {
		return *s.MinSF, true
	}
	if s.TargetSF != nil {
		return *s.TargetSF * 0.8, true
	}
	return 0, false
}

type BuildingRequirement struct {
	AcceptableClasses      []string         `json:"acceptableClasses"` // first entry is preferred
	ADARequired            bool             `json:"adaRequired"`
	PublicTransitPreferred bool             `json:"publicTransitPreferred"`
	Features               BuildingFeatures `json:"features"` // required features
	Certifications         []string         `json:"certifications"`
}

type TimelineRequirement struct {
	OccupancyDate    time.Time `json:"occupancyDate"`
	FirmTermMonths   int       `json:"firmTermMonths"`
	TotalTermMonths  int       `json:"totalTermMonths"`
	ResponseDeadline time.Time `json:"responseDeadline"`
}

// Viable reports whether the requirement carries enough information to be
// scored at all: a non-empty state plus at least one space bound. This is
// the single gate the batch matcher applies before scoring a solicitation.
func (r Requirement) Viable() bool {
	if r.Location.State == "" {
		return false
	}
	return r.Space.MinSF != nil || r.Space.MaxSF != nil || r.Space.TargetSF != nil
}
