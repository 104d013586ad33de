package scoring

import (
	"fmt"
	"math"

	"leasematch/internal/models"
)

const (
	// spaceContiguityScore is returned whenever contiguous space is
	// required but the listing cannot offer it, regardless of size fit.
	spaceContiguityScore = 30
)

// ScoreSpace scores size fit using the listing's available area (total
// area when available is unset) against the requirement's bounds.
func ScoreSpace(l models.Listing, req models.SpaceRequirement) (out models.SpaceScore) {
	out.Weight = models.WeightSpace
	defer func() { out.Weighted = float64(out.Score) * out.Weight }()

	area := l.EffectiveArea()
	out.Breakdown = models.SpaceBreakdown{
		AvailableSF:   area,
		RequiredMinSF: req.MinSF,
		RequiredMaxSF: req.MaxSF,
		TargetSF:      req.TargetSF,
		ContiguousOK:  true,
	}

	min := 0.0
	if req.MinSF != nil {
		min = *req.MinSF
	}
	out.Breakdown.MeetsMinimum = area >= min
	out.Breakdown.MeetsMaximum = req.MaxSF == nil || area <= *req.MaxSF

	if req.ContiguousRequired && !l.Contiguous {
		out.Breakdown.ContiguousOK = false
		out.Breakdown.Note = "contiguous space required but listing is not contiguous"
		out.Score = spaceContiguityScore
		return out
	}

	switch {
	case out.Breakdown.MeetsMinimum && out.Breakdown.MeetsMaximum:
		score := 100
		if req.TargetSF != nil && *req.TargetSF > 0 {
			dev := math.Abs(area-*req.TargetSF) / *req.TargetSF
			pct := dev * 100
			out.Breakdown.TargetDeviationPct = &pct
			switch {
			case dev > 0.05 && dev <= 0.15:
				score -= 5
			case dev > 0.15 && dev <= 0.25:
				score -= 10
			}
		}
		out.Breakdown.Note = "meets size requirements"
		out.Score = score

	case !out.Breakdown.MeetsMaximum:
		// Oversized space still works when it can be divided down to fit.
		if l.MinDivisibleSF > 0 && l.MinDivisibleSF <= *req.MaxSF {
			out.Breakdown.Note = "exceeds maximum but divisible to fit"
			out.Score = 80
		} else {
			out.Breakdown.Note = "exceeds maximum and not divisible to fit"
			out.Score = 50
		}

	default: // under minimum
		shortfall := (min - area) / min
		pct := shortfall * 100
		out.Breakdown.ShortfallPct = &pct
		switch {
		case shortfall <= 0.05:
			out.Breakdown.Note = "within 5% of minimum"
			out.Score = 80
		case shortfall <= 0.10:
			out.Breakdown.Note = "within 10% of minimum"
			out.Score = 60
		case shortfall <= 0.20:
			out.Breakdown.Note = "within 20% of minimum"
			out.Score = 40
		default:
			out.Breakdown.Note = fmt.Sprintf("%.0f%% below required minimum", pct)
			out.Score = 20
		}
	}

	return out
}
