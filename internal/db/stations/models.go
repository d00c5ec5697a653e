package stations

import (
	"time"

	"gorm.io/gorm"
)

// Station is the static description of a bike station.
type Station struct {
	StationID   int     `json:"station_id" gorm:"column:station_id;primaryKey;autoIncrement:false"`
	Address     string  `json:"address" gorm:"column:address;size:128"`
	Banking     bool    `json:"banking" gorm:"column:banking"`
	Bonus       bool    `json:"bonus" gorm:"column:bonus"`
	BikeStands  int     `json:"bike_stands" gorm:"column:bike_stands"`
	Name        string  `json:"name" gorm:"column:name;size:128"`
	PositionLat float64 `json:"position_lat" gorm:"column:position_lat"`
	PositionLng float64 `json:"position_lng" gorm:"column:position_lng"`
}

func (Station) TableName() string {
	return "station"
}

// Availability is one observation of a station, keyed by the upstream update time.
type Availability struct {
	StationID           int       `json:"station_id" gorm:"column:station_id;primaryKey;autoIncrement:false"`
	LastUpdate          time.Time `json:"last_update" gorm:"column:last_update;primaryKey"`
	AvailableBikes      int       `json:"available_bikes" gorm:"column:available_bikes"`
	AvailableBikeStands int       `json:"available_bike_stands" gorm:"column:available_bike_stands"`
	Status              string    `json:"status" gorm:"column:status;size:128"`
}

func (Availability) TableName() string {
	return "availability"
}

func (a *Availability) AfterFind(*gorm.DB) error {
	a.LastUpdate = a.LastUpdate.UTC()
	return nil
}
