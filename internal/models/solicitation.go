package models

import "time"

type Solicitation struct {
	ID               string    `json:"id"`
	Number           string    `json:"number"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Agency           string    `json:"agency"`
	State            string    `json:"state"`
	City             string    `json:"city"`
	Zip              string    `json:"zip"`
	CenterLatitude   *float64  `json:"centerLatitude,omitempty"`  // delineated area center
	CenterLongitude  *float64  `json:"centerLongitude,omitempty"` // delineated area center
	RadiusMiles      float64   `json:"radiusMiles"`               // 0 = no delineated area
	ResponseDeadline time.Time `json:"responseDeadline"`
	Active           bool      `json:"active"`
}
