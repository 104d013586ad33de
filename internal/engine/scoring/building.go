package scoring

import (
	"strings"

	"leasematch/internal/models"
)

const (
	buildingBase            = 50
	buildingPreferredBonus  = 20
	buildingAcceptableBonus = 10
	buildingClassPenalty    = 20
	buildingADAPenalty      = 30
	buildingTransitPenalty  = 5
	buildingCertBonus       = 5
)

// featureWeights is the static table driving feature scoring. A required
// feature that is present awards the full weight; a required feature that
// is absent costs half the weight, rounded up.
var featureWeights = []struct {
	name   string
	get    func(models.BuildingFeatures) bool
	weight int
}{
	{"fiber optic", func(f models.BuildingFeatures) bool { return f.FiberOptic }, 5},
	{"backup power", func(f models.BuildingFeatures) bool { return f.BackupPower }, 5},
	{"loading dock", func(f models.BuildingFeatures) bool { return f.LoadingDock }, 5},
	{"24x7 security", func(f models.BuildingFeatures) bool { return f.Security24x7 }, 5},
	{"secure access", func(f models.BuildingFeatures) bool { return f.SecureAccess }, 5},
	{"SCIF capability", func(f models.BuildingFeatures) bool { return f.SCIFCapable }, 10},
	{"data center", func(f models.BuildingFeatures) bool { return f.DataCenter }, 10},
	{"cafeteria", func(f models.BuildingFeatures) bool { return f.Cafeteria }, 2},
	{"fitness center", func(f models.BuildingFeatures) bool { return f.FitnessCenter }, 2},
	{"conference space", func(f models.BuildingFeatures) bool { return f.ConferenceSpace }, 3},
}

// normalizeClass folds "A+" into "A" for acceptability checks.
func normalizeClass(class string) string {
	c := strings.ToUpper(strings.TrimSpace(class))
	if c == models.ClassAPlus {
		return models.ClassA
	}
	return c
}

// ScoreBuilding scores building quality, accessibility, features and
// certifications from a base of 50.
func ScoreBuilding(l models.Listing, req models.BuildingRequirement) (out models.BuildingScore) {
	out.Weight = models.WeightBuilding
	defer func() { out.Weighted = float64(out.Score) * out.Weight }()

	class := normalizeClass(l.BuildingClass)
	if class == "" {
		// Unknown building class: no basis for adjustment either way.
		out.Score = buildingBase
		return out
	}
	out.Breakdown.ClassKnown = true

	score := buildingBase

	matched := false
	for i, acceptable := range req.AcceptableClasses {
		if class == normalizeClass(acceptable) {
			matched = true
			out.Breakdown.ClassMatch = true
			if i == 0 {
				out.Breakdown.PreferredClass = true
				score += buildingPreferredBonus
			} else {
				score += buildingAcceptableBonus
			}
			break
		}
	}
	if !matched && len(req.AcceptableClasses) > 0 {
		score -= buildingClassPenalty
	}

	out.Breakdown.ADAMet = !req.ADARequired || l.ADACompliant
	if !out.Breakdown.ADAMet {
		score -= buildingADAPenalty
	}

	out.Breakdown.TransitMet = !req.PublicTransitPreferred || l.PublicTransit
	if !out.Breakdown.TransitMet {
		score -= buildingTransitPenalty
	}

	for _, fw := range featureWeights {
		if !fw.get(req.Features) {
			continue
		}
		if fw.get(l.Features) {
			score += fw.weight
			out.Breakdown.FeaturesMatched = append(out.Breakdown.FeaturesMatched, fw.name)
		} else {
			score -= (fw.weight + 1) / 2
			out.Breakdown.FeaturesMissing = append(out.Breakdown.FeaturesMissing, fw.name)
		}
	}

	for _, required := range req.Certifications {
		if hasCertification(l.Certifications, required) {
			score += buildingCertBonus
			out.Breakdown.CertificationsMatched = append(out.Breakdown.CertificationsMatched, required)
		} else {
			out.Breakdown.CertificationsMissing = append(out.Breakdown.CertificationsMissing, required)
		}
	}

	out.Score = clampScore(score)
	return out
}

func hasCertification(have []string, want string) bool {
	for _, c := range have {
		if strings.Contains(strings.ToLower(c), strings.ToLower(want)) {
			return true
		}
	}
	return false
}
