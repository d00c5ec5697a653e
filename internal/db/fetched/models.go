package fetched

import (
	"time"

	"gorm.io/gorm"
)

// ForecastType partitions FetchedWeatherData rows.
type ForecastType string

const (
	ForecastCurrent ForecastType = "current"
	ForecastHourly  ForecastType = "hourly"
	ForecastDaily   ForecastType = "daily"
)

func (f ForecastType) Valid() bool {
	switch f {
	case ForecastCurrent, ForecastHourly, ForecastDaily:
		return true
	}
	return false
}

// FetchedBikesData is one station as observed by a single upstream fetch.
// Every row of one fetch shares TimeRequested.
type FetchedBikesData struct {
	TimeRequested       time.Time  `json:"time_requested" gorm:"column:time_requested;primaryKey;autoIncrement:false;index:idx_fetched_bikes_time_requested"`
	StationID           int        `json:"station_id" gorm:"column:station_id;primaryKey;autoIncrement:false"`
	AvailableBikes      int        `json:"available_bikes" gorm:"column:available_bikes"`
	AvailableBikeStands int        `json:"available_bike_stands" gorm:"column:available_bike_stands"`
	Status              string     `json:"status" gorm:"column:status;size:128"`
	LastUpdate          *time.Time `json:"last_update" gorm:"column:last_update"`
	Address             string     `json:"address" gorm:"column:address;size:128"`
	Banking             bool       `json:"banking" gorm:"column:banking"`
	Bonus               bool       `json:"bonus" gorm:"column:bonus"`
	BikeStands          int        `json:"bike_stands" gorm:"column:bike_stands"`
	Name                string     `json:"name" gorm:"column:name;size:128"`
	PositionLat         float64    `json:"position_lat" gorm:"column:position_lat"`
	PositionLng         float64    `json:"position_lng" gorm:"column:position_lng"`
}

func (FetchedBikesData) TableName() string {
	return "fetched_bikes_data"
}

// AfterFind puts read-back times in UTC, whatever zone the driver decoded them into.
func (b *FetchedBikesData) AfterFind(*gorm.DB) error {
	b.TimeRequested = b.TimeRequested.UTC()
	b.LastUpdate = utcPointer(b.LastUpdate)
	return nil
}

// FetchedWeatherData is one current observation or forecast entry. Current rows
// carry Sunrise and Sunset, forecast rows leave them nil.
type FetchedWeatherData struct {
	TimestampRequested   time.Time    `json:"timestamp_requested" gorm:"column:timestamp_requested;primaryKey;index:idx_fetched_weather_type_requested,priority:2"`
	TimestampWeatherinfo time.Time    `json:"timestamp_weatherinfo" gorm:"column:timestamp_weatherinfo;primaryKey"`
	ForecastType         ForecastType `json:"forecast_type" gorm:"column:forecast_type;size:16;index:idx_fetched_weather_type_requested,priority:1"`
	TargetDatetime       time.Time    `json:"target_datetime" gorm:"column:target_datetime"`
	FeelsLike            *float64     `json:"feels_like" gorm:"column:feels_like"`
	Humidity             *int         `json:"humidity" gorm:"column:humidity"`
	Pressure             *int         `json:"pressure" gorm:"column:pressure"`
	Sunrise              *time.Time   `json:"sunrise" gorm:"column:sunrise"`
	Sunset               *time.Time   `json:"sunset" gorm:"column:sunset"`
	Temp                 *float64     `json:"temp" gorm:"column:temp"`
	UVI                  *float64     `json:"uvi" gorm:"column:uvi"`
	WeatherID            string       `json:"weather_id" gorm:"column:weather_id;size:16"`
	WindGust             *float64     `json:"wind_gust" gorm:"column:wind_gust"`
	WindSpeed            *float64     `json:"wind_speed" gorm:"column:wind_speed"`
	Rain1h               *float64     `json:"rain_1h" gorm:"column:rain_1h"`
	Snow1h               *float64     `json:"snow_1h" gorm:"column:snow_1h"`
}

func (FetchedWeatherData) TableName() string {
	return "fetched_weather_data"
}

func (w *FetchedWeatherData) AfterFind(*gorm.DB) error {
	w.TimestampRequested = w.TimestampRequested.UTC()
	w.TimestampWeatherinfo = w.TimestampWeatherinfo.UTC()
	w.TargetDatetime = w.TargetDatetime.UTC()
	w.Sunrise = utcPointer(w.Sunrise)
	w.Sunset = utcPointer(w.Sunset)
	return nil
}

func utcPointer(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// PurgeResult counts the rows removed by PurgeRequestedBefore.
type PurgeResult struct {
	WeatherDeleted int64
	BikesDeleted   int64
}
