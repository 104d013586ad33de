package scoring

import (
	"time"

	"leasematch/internal/models"
)

const (
	timelineFirmTermPenalty  = 10
	timelineTotalTermPenalty = 5
)

// ScoreTimeline scores availability against the required occupancy date,
// then layers lease-term compatibility on top. The clock is passed in so
// the scorer stays deterministic.
func ScoreTimeline(l models.Listing, req models.TimelineRequirement, now time.Time) (out models.TimelineScore) {
	out.Weight = models.WeightTimeline
	defer func() { out.Weighted = float64(out.Score) * out.Weight }()

	daysUntilAvailable := int(l.AvailableFrom.Sub(now).Hours() / 24)
	bufferDays := int(req.OccupancyDate.Sub(l.AvailableFrom).Hours() / 24)

	out.Breakdown = models.TimelineBreakdown{
		DaysUntilAvailable: daysUntilAvailable,
		BufferDays:         bufferDays,
		AvailableOnTime:    bufferDays >= 0,
		FirmTermOK:         true,
		TotalTermOK:        true,
	}

	var score int
	if bufferDays >= 0 {
		switch {
		case bufferDays >= 90:
			score = 100
		case bufferDays >= 60:
			score = 90
		case bufferDays >= 30:
			score = 80
		default:
			score = 70
		}
	} else {
		late := -bufferDays
		switch {
		case late <= 30:
			score = 50
		case late <= 60:
			score = 30
		default:
			score = 10
		}
	}

	// Missing listing term bounds impose no penalty.
	if req.FirmTermMonths > 0 && l.MinLeaseTermMonths > 0 && req.FirmTermMonths < l.MinLeaseTermMonths {
		out.Breakdown.FirmTermOK = false
		score -= timelineFirmTermPenalty
	}
	if req.TotalTermMonths > 0 && l.MaxLeaseTermMonths > 0 && req.TotalTermMonths > l.MaxLeaseTermMonths {
		out.Breakdown.TotalTermOK = false
		score -= timelineTotalTermPenalty
	}

	if score < 0 {
		score = 0
	}
	out.Score = score
	return out
}
