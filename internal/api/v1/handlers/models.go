package handlers

import (
	"time"

	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/db/stations"
)

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BikeStation is one station of a cached bikes snapshot.
type BikeStation struct {
	Number              int        `json:"number"`
	Name                string     `json:"name"`
	Address             string     `json:"address"`
	Position            Position   `json:"position"`
	Banking             bool       `json:"banking"`
	Bonus               bool       `json:"bonus"`
	BikeStands          int        `json:"bike_stands"`
	AvailableBikeStands int        `json:"available_bike_stands"`
	AvailableBikes      int        `json:"available_bikes"`
	Status              string     `json:"status"`
	LastUpdate          *time.Time `json:"last_update"`
	TimeRequested       time.Time  `json:"time_requested"`
}

type WeatherResponse struct {
	TimestampRequested   time.Time  `json:"timestamp_requested"`
	TimestampWeatherinfo time.Time  `json:"timestamp_weatherinfo"`
	ForecastType         string     `json:"forecast_type"`
	TargetDatetime       time.Time  `json:"target_datetime"`
	FeelsLike            *float64   `json:"feels_like"`
	Humidity             *int       `json:"humidity"`
	Pressure             *int       `json:"pressure"`
	Sunrise              *time.Time `json:"sunrise,omitempty"`
	Sunset               *time.Time `json:"sunset,omitempty"`
	Temp                 *float64   `json:"temp"`
	UVI                  *float64   `json:"uvi"`
	WeatherID            string     `json:"weather_id"`
	WindGust             *float64   `json:"wind_gust"`
	WindSpeed            *float64   `json:"wind_speed"`
	Rain1h               *float64   `json:"rain_1h"`
	Snow1h               *float64   `json:"snow_1h"`
}

type StationResponse struct {
	Number     int      `json:"number"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Position   Position `json:"position"`
	Banking    bool     `json:"banking"`
	Bonus      bool     `json:"bonus"`
	BikeStands int      `json:"bike_stands"`
	// Latest is the newest cached snapshot of the station, if any.
	Latest *BikeStation `json:"latest,omitempty"`
}

type AvailabilityResponse struct {
	LastUpdate          time.Time `json:"last_update"`
	AvailableBikes      int       `json:"available_bikes"`
	AvailableBikeStands int       `json:"available_bike_stands"`
	Status              string    `json:"status"`
}

type AvailabilityDayResponse struct {
	Number       int                    `json:"number"`
	Date         string                 `json:"date"`
	Observations []AvailabilityResponse `json:"observations"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func toBikeStation(row fetched.FetchedBikesData) BikeStation {
	return BikeStation{
		Number:              row.StationID,
		Name:                row.Name,
		Address:             row.Address,
		Position:            Position{Lat: row.PositionLat, Lng: row.PositionLng},
		Banking:             row.Banking,
		Bonus:               row.Bonus,
		BikeStands:          row.BikeStands,
		AvailableBikeStands: row.AvailableBikeStands,
		AvailableBikes:      row.AvailableBikes,
		Status:              row.Status,
		LastUpdate:          row.LastUpdate,
		TimeRequested:       row.TimeRequested,
	}
}

func toWeatherResponse(row *fetched.FetchedWeatherData) WeatherResponse {
	return WeatherResponse{
		TimestampRequested:   row.TimestampRequested,
		TimestampWeatherinfo: row.TimestampWeatherinfo,
		ForecastType:         string(row.ForecastType),
		TargetDatetime:       row.TargetDatetime,
		FeelsLike:            row.FeelsLike,
		Humidity:             row.Humidity,
		Pressure:             row.Pressure,
		Sunrise:              row.Sunrise,
		Sunset:               row.Sunset,
		Temp:                 row.Temp,
		UVI:                  row.UVI,
		WeatherID:            row.WeatherID,
		WindGust:             row.WindGust,
		WindSpeed:            row.WindSpeed,
		Rain1h:               row.Rain1h,
		Snow1h:               row.Snow1h,
	}
}

func toStationResponse(station stations.Station) StationResponse {
	return StationResponse{
		Number:     station.StationID,
		Name:       station.Name,
		Address:    station.Address,
		Position:   Position{Lat: station.PositionLat, Lng: station.PositionLng},
		Banking:    station.Banking,
		Bonus:      station.Bonus,
		BikeStands: station.BikeStands,
	}
}
