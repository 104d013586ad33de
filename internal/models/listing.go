package models

import "time"

// BuildingClass values used by listings and requirements. "A+" is treated
// as "A" for acceptability checks but preserved for display.
const (
	ClassAPlus = "A+"
	ClassA     = "A"
	ClassB     = "B"
	ClassC     = "C"
)

type Listing struct {
	ID                 string             `json:"id"`
	BrokerID           string             `json:"brokerId"`
	Title              string             `json:"title"`
	Address            string             `json:"address"`
	City               string             `json:"city"`
	State              string             `json:"state"` // two-letter code
	Zip                string             `json:"zip"`
	Latitude           *float64           `json:"latitude,omitempty"`
	Longitude          *float64           `json:"longitude,omitempty"`
	TotalSF            float64            `json:"totalSf"`
	AvailableSF        float64            `json:"availableSf"` // invariant: <= TotalSF
	UsableSF           float64            `json:"usableSf"`
	MinDivisibleSF     float64            `json:"minDivisibleSf"`
	Contiguous         bool               `json:"contiguous"`
	BuildingClass      string             `json:"buildingClass"`
	ADACompliant       bool               `json:"adaCompliant"`
	PublicTransit      bool               `json:"publicTransit"`
	Features           BuildingFeatures   `json:"features"`
	Certifications     []string           `json:"certifications"`
	AvailableFrom      time.Time          `json:"availableFrom"`
	MinLeaseTermMonths int                `json:"minLeaseTermMonths"` // 0 = unspecified
	MaxLeaseTermMonths int                `json:"maxLeaseTermMonths"` // 0 = unspecified
	Profile            *ExperienceProfile `json:"profile,omitempty"`
}

// EffectiveArea is the square footage used for space scoring: available
// area when known, otherwise the building total.
func (l Listing) EffectiveArea() float64 {
	if l.AvailableSF > 0 {
		return l.AvailableSF
	}
	return l.TotalSF
}

// BuildingFeatures is the fixed feature set shared between a listing's
// "features present" shape and a requirement's "features required" shape.
type BuildingFeatures struct {
	FiberOptic      bool `json:"fiberOptic"`
	BackupPower     bool `json:"backupPower"`
	LoadingDock     bool `json:"loadingDock"`
	Security24x7    bool `json:"security24x7"`
	SecureAccess    bool `json:"secureAccess"`
	SCIFCapable     bool `json:"scifCapable"`
	DataCenter      bool `json:"dataCenter"`
	Cafeteria       bool `json:"cafeteria"`
	FitnessCenter   bool `json:"fitnessCenter"`
	ConferenceSpace bool `json:"conferenceSpace"`
}

// ExperienceProfile describes the broker behind a listing.
type ExperienceProfile struct {
	GovernmentLeases    int  `json:"governmentLeases"`
	GovernmentCertified bool `json:"governmentCertified"`
	References          int  `json:"references"`
	BuildToSuit         bool `json:"buildToSuit"`
	TenantImprovements  bool `json:"tenantImprovements"`
}
