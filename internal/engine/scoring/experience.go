package scoring

import "leasematch/internal/models"

const (
	experienceBase          = 30
	experienceGovBonus      = 25
	experienceGovTier2      = 10 // 2-4 prior government leases
	experienceGovTier5      = 15 // 5 or more
	experienceCertBonus     = 10
	experienceRefsStrong    = 10 // 3+ references
	experienceRefsSome      = 5  // 1-2 references
	experienceBuildToSuit   = 5
	experienceTenantImprove = 5
)

// ScoreExperience scores the broker behind the listing. Every broker
// starts at the base score; government track record dominates the rest.
func ScoreExperience(profile models.ExperienceProfile) (out models.ExperienceScore) {
	out.Weight = models.WeightExperience
	defer func() { out.Weighted = float64(out.Score) * out.Weight }()

	out.Breakdown = models.ExperienceBreakdown{
		GovernmentLeases:    profile.GovernmentLeases,
		HasGovernmentLeases: profile.GovernmentLeases > 0,
		GovernmentCertified: profile.GovernmentCertified,
		References:          profile.References,
		BuildToSuit:         profile.BuildToSuit,
		TenantImprovements:  profile.TenantImprovements,
	}

	score := experienceBase

	if profile.GovernmentLeases > 0 {
		score += experienceGovBonus
		switch {
		case profile.GovernmentLeases >= 5:
			score += experienceGovTier5
		case profile.GovernmentLeases >= 2:
			score += experienceGovTier2
		}
	}

	if profile.GovernmentCertified {
		score += experienceCertBonus
	}

	switch {
	case profile.References >= 3:
		score += experienceRefsStrong
	case profile.References >= 1:
		score += experienceRefsSome
	}

	if profile.BuildToSuit {
		score += experienceBuildToSuit
	}
	if profile.TenantImprovements {
		score += experienceTenantImprove
	}

	out.Score = clampScore(score)
	return out
}
