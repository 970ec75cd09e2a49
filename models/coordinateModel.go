package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Coordinate records the outcome of one geocoder lookup per address,
// including failed lookups (AreDefined=false, no lon/lat). Rows are
// written once and never refreshed.
type Coordinate struct {
	gorm.Model
	Address         string         `json:"address" gorm:"uniqueIndex;size:100"`
	Lon             *float64       `json:"lon"`
	Lat             *float64       `json:"lat"`
	AreDefined      bool           `json:"areDefined"`
	RequestDate     time.Time      `json:"requestDate"`
	ProviderPayload datatypes.JSON `json:"-"`
}
