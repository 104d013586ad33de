package models

import "time"

// Factor weights. They must sum to exactly 1.0.
const (
	WeightLocation   = 0.30
	WeightSpace      = 0.25
	WeightBuilding   = 0.20
	WeightTimeline   = 0.15
	WeightExperience = 0.10
)

// Grade bands for the overall score.
const (
	GradeA = "A" // >= 85
	GradeB = "B" // >= 70
	GradeC = "C" // >= 55
	GradeD = "D" // >= 40
	GradeF = "F"
)

// CompetitiveThreshold is the overall score at or above which a qualified
// match is flagged competitive.
const CompetitiveThreshold = 70

type MatchResult struct {
	ListingID       string          `json:"listingId"`
	SolicitationID  string          `json:"solicitationId"`
	Location        LocationScore   `json:"location"`
	Space           SpaceScore      `json:"space"`
	Building        BuildingScore   `json:"building"`
	Timeline        TimelineScore   `json:"timeline"`
	Experience      ExperienceScore `json:"experience"`
	OverallScore    int             `json:"overallScore"`
	Grade           string          `json:"grade"`
	Qualified       bool            `json:"qualified"`
	Competitive     bool            `json:"competitive"`
	Disqualifiers   []string        `json:"disqualifiers,omitempty"`
	Strengths       []string        `json:"strengths,omitempty"`
	Weaknesses      []string        `json:"weaknesses,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
	ScoredAt        time.Time       `json:"scoredAt"`
}

// FactorScore is the shared shape of one scoring dimension: a 0-100 score,
// its fixed weight, and the weighted contribution to the overall score.
type FactorScore struct {
	Score    int     `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

type LocationScore struct {
	FactorScore
	Breakdown LocationBreakdown `json:"breakdown"`
}

type SpaceScore struct {
	FactorScore
	Breakdown SpaceBreakdown `json:"breakdown"`
}

type BuildingScore struct {
	FactorScore
	Breakdown BuildingBreakdown `json:"breakdown"`
}

type TimelineScore struct {
	FactorScore
	Breakdown TimelineBreakdown `json:"breakdown"`
}

type ExperienceScore struct {
	FactorScore
	Breakdown ExperienceBreakdown `json:"breakdown"`
}

type LocationBreakdown struct {
	StateMatch    bool     `json:"stateMatch"`
	CityMatch     bool     `json:"cityMatch"`
	DistanceMiles *float64 `json:"distanceMiles,omitempty"`
	WithinRadius  *bool    `json:"withinRadius,omitempty"`
}

type SpaceBreakdown struct {
	AvailableSF        float64  `json:"availableSf"`
	RequiredMinSF      *float64 `json:"requiredMinSf,omitempty"`
	RequiredMaxSF      *float64 `json:"requiredMaxSf,omitempty"`
	TargetSF           *float64 `json:"targetSf,omitempty"`
	MeetsMinimum       bool     `json:"meetsMinimum"`
	MeetsMaximum       bool     `json:"meetsMaximum"`
	ContiguousOK       bool     `json:"contiguousOk"`
	ShortfallPct       *float64 `json:"shortfallPct,omitempty"`
	TargetDeviationPct *float64 `json:"targetDeviationPct,omitempty"`
	Note               string   `json:"note,omitempty"`
}

type BuildingBreakdown struct {
	ClassMatch            bool     `json:"classMatch"`
	PreferredClass        bool     `json:"preferredClass"`
	ClassKnown            bool     `json:"classKnown"`
	ADAMet                bool     `json:"adaMet"`
	TransitMet            bool     `json:"transitMet"`
	FeaturesMatched       []string `json:"featuresMatched,omitempty"`
	FeaturesMissing       []string `json:"featuresMissing,omitempty"`
	CertificationsMatched []string `json:"certificationsMatched,omitempty"`
	CertificationsMissing []string `json:"certificationsMissing,omitempty"`
}

type TimelineBreakdown struct {
	AvailableOnTime    bool `json:"availableOnTime"`
	BufferDays         int  `json:"bufferDays"`
	DaysUntilAvailable int  `json:"daysUntilAvailable"`
	FirmTermOK         bool `json:"firmTermOk"`
	TotalTermOK        bool `json:"totalTermOk"`
}

type ExperienceBreakdown struct {
	GovernmentLeases    int  `json:"governmentLeases"`
	HasGovernmentLeases bool `json:"hasGovernmentLeases"`
	GovernmentCertified bool `json:"governmentCertified"`
	References          int  `json:"references"`
	BuildToSuit         bool `json:"buildToSuit"`
	TenantImprovements  bool `json:"tenantImprovements"`
}
