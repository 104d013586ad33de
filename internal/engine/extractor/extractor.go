// Package extractor turns a solicitation's structured fields and free-text
// title/description into a normalized models.Requirement. Extraction never
// fails: missing or malformed text yields conservative defaults so the
// downstream scorers always receive a complete bundle.
package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"leasematch/internal/models"
)

// Defaults applied when the text yields no usable signal.
const (
	DefaultMinSF = 5000.0
	DefaultMaxSF = 50000.0

	// SingleValueBand derives min/max from a lone extracted size:
	// min = (1-band)*target, max = (1+band)*target. Empirical constant.
	SingleValueBand = 0.2

	DefaultOccupancyOffsetMonths = 6
	DefaultFirmTermMonths        = 120
	DefaultTotalTermMonths       = 240
)

var (
	reSpaceRange = regexp.MustCompile(`(?i)([\d,]+)\s*(?:to|-|–|through)\s*([\d,]+)\s*(?:rsf|sf|sq\.?\s*ft\.?|square\s+feet)`)
	reSpaceValue = regexp.MustCompile(`(?i)([\d,]+)\s*(?:rsf|sf|sq\.?\s*ft\.?|square\s+feet)`)
	reClass      = regexp.MustCompile(`(?i)class\s*([ABC]\+?)`)
	reOccupancy  = regexp.MustCompile(`(?i)occupancy\s+(?:by|date:?|no\s+later\s+than|on\s+or\s+before)\s+([A-Za-z]+\s+\d{1,2},\s+\d{4})`)
	reFirmTerm   = regexp.MustCompile(`(?i)(\d+)[\s-]*year[s]?\s+firm`)
	reTotalTerm  = regexp.MustCompile(`(?i)total\s+term\s+of\s+(\d+)\s+year[s]?`)
	reContiguous = regexp.MustCompile(`(?i)contiguous`)
	reDivisible  = regexp.MustCompile(`(?i)divisible`)
)

// featurePatterns detect required building features in free text. Each
// pattern is independent; a hit sets the matching flag on the requirement.
var featurePatterns = []struct {
	set     func(*models.BuildingFeatures)
	pattern *regexp.Regexp
}{
	{func(f *models.BuildingFeatures) { f.FiberOptic = true }, regexp.MustCompile(`(?i)fiber`)},
	{func(f *models.BuildingFeatures) { f.BackupPower = true }, regexp.MustCompile(`(?i)backup\s+power|emergency\s+generator|uninterruptible\s+power`)},
	{func(f *models.BuildingFeatures) { f.LoadingDock = true }, regexp.MustCompile(`(?i)loading\s+dock`)},
	{func(f *models.BuildingFeatures) { f.Security24x7 = true }, regexp.MustCompile(`(?i)24[/x×]7\s*security|24.hour\s+security|round.the.clock\s+security`)},
	{func(f *models.BuildingFeatures) { f.SecureAccess = true }, regexp.MustCompile(`(?i)secure\s+access|controlled\s+access|access\s+control`)},
	{func(f *models.BuildingFeatures) { f.SCIFCapable = true }, regexp.MustCompile(`(?i)\bSCIF\b|sensitive\s+compartmented`)},
	{func(f *models.BuildingFeatures) { f.DataCenter = true }, regexp.MustCompile(`(?i)data\s+center`)},
	{func(f *models.BuildingFeatures) { f.Cafeteria = true }, regexp.MustCompile(`(?i)cafeteria|food\s+service`)},
	{func(f *models.BuildingFeatures) { f.FitnessCenter = true }, regexp.MustCompile(`(?i)fitness\s+(?:center|facility)|\bgym\b`)},
	{func(f *models.BuildingFeatures) { f.ConferenceSpace = true }, regexp.MustCompile(`(?i)conference\s+(?:room|space|center|facilit)`)},
}

var certificationPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"LEED", regexp.MustCompile(`(?i)\bLEED\b`)},
	{"Energy Star", regexp.MustCompile(`(?i)energy\s*star`)},
}

var reTransit = regexp.MustCompile(`(?i)public\s+transportation|public\s+transit|metro\s+station|\bmetro\b`)

// Extract builds the requirement bundle for one solicitation. Location
// comes from structured fields only; space, building and timeline details
// are scanned out of the combined title and description.
func Extract(s models.Solicitation) models.Requirement {
	text := s.Title + "\n" + s.Description

	return models.Requirement{
		SolicitationID: s.ID,
		Location:       extractLocation(s),
		Space:          extractSpace(text),
		Building:       extractBuilding(text),
		Timeline:       extractTimeline(text, s.ResponseDeadline),
	}
}

func extractLocation(s models.Solicitation) models.LocationRequirement {
	return models.LocationRequirement{
		State:           strings.ToUpper(strings.TrimSpace(s.State)),
		City:            strings.TrimSpace(s.City),
		CenterLatitude:  s.CenterLatitude,
		CenterLongitude: s.CenterLongitude,
		RadiusMiles:     s.RadiusMiles,
	}
}

func extractSpace(text string) models.SpaceRequirement {
	req := models.SpaceRequirement{
		ContiguousRequired: reContiguous.MatchString(text),
		DivisibleAccepted:  reDivisible.MatchString(text),
	}

	if m := reSpaceRange.FindStringSubmatch(text); m != nil {
		lo, okLo := parseArea(m[1])
		hi, okHi := parseArea(m[2])
		if okLo && okHi && lo > 0 && hi >= lo {
			req.MinSF = &lo
			req.MaxSF = &hi
			return req
		}
	}

	if m := reSpaceValue.FindStringSubmatch(text); m != nil {
		if v, ok := parseArea(m[1]); ok && v > 0 {
			lo := v * (1 - SingleValueBand)
			hi := v * (1 + SingleValueBand)
			req.TargetSF = &v
			req.MinSF = &lo
			req.MaxSF = &hi
			return req
		}
	}

	lo, hi := DefaultMinSF, DefaultMaxSF
	req.MinSF = &lo
	req.MaxSF = &hi
	return req
}

func parseArea(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func extractBuilding(text string) models.BuildingRequirement {
	req := models.BuildingRequirement{
		// ADA compliance is assumed required for every government lease.
		ADARequired:            true,
		PublicTransitPreferred: reTransit.MatchString(text),
	}

	seen := map[string]bool{}
	for _, m := range reClass.FindAllStringSubmatch(text, -1) {
		class := strings.ToUpper(m[1])
		if !seen[class] {
			seen[class] = true
			req.AcceptableClasses = append(req.AcceptableClasses, class)
		}
	}
	if len(req.AcceptableClasses) == 0 {
		req.AcceptableClasses = []string{models.ClassA, models.ClassB}
	}

	for _, fp := range featurePatterns {
		if fp.pattern.MatchString(text) {
			fp.set(&req.Features)
		}
	}

	for _, cp := range certificationPatterns {
		if cp.pattern.MatchString(text) {
			req.Certifications = append(req.Certifications, cp.name)
		}
	}

	return req
}

func extractTimeline(text string, deadline time.Time) models.TimelineRequirement {
	req := models.TimelineRequirement{
		ResponseDeadline: deadline,
		FirmTermMonths:   DefaultFirmTermMonths,
		TotalTermMonths:  DefaultTotalTermMonths,
	}

	req.OccupancyDate = deadline.AddDate(0, DefaultOccupancyOffsetMonths, 0)
	if m := reOccupancy.FindStringSubmatch(text); m != nil {
		if d, err := time.Parse("January 2, 2006", m[1]); err == nil {
			req.OccupancyDate = d
		}
	}

	if m := reFirmTerm.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil && years > 0 {
			req.FirmTermMonths = years * 12
		}
	}
	if m := reTotalTerm.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil && years > 0 {
			req.TotalTermMonths = years * 12
		}
	}

	return req
}
