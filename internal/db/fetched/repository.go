package fetched

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dublinbikes/station-service/internal/errs"
)

const insertBatchSize = 50

type Repository interface {
	RecentBikes(ctx context.Context, since time.Time) ([]FetchedBikesData, error)
	InsertBikes(ctx context.Context, rows []FetchedBikesData) error

	LatestWeather(ctx context.Context, kind ForecastType, since time.Time) (*FetchedWeatherData, error)
	ForecastCandidates(ctx context.Context, kind ForecastType, since, from, to time.Time) ([]FetchedWeatherData, error)
	InsertWeather(ctx context.Context, rows []FetchedWeatherData) error

	PurgeRequestedBefore(ctx context.Context, cutoff time.Time) (PurgeResult, error)
}

type FetchedSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &FetchedSQLRepository{db: db}
}

// RecentBikes returns every bikes row requested at or after since, newest fetch first.
func (r *FetchedSQLRepository) RecentBikes(ctx context.Context, since time.Time) ([]FetchedBikesData, error) {
	var rows []FetchedBikesData
	err := r.db.WithContext(ctx).
		Where("time_requested >= ?", since.UTC()).
		Order("time_requested DESC").
		Order("station_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Store(err, "query cached bikes data")
	}
	return rows, nil
}

func (r *FetchedSQLRepository) InsertBikes(ctx context.Context, rows []FetchedBikesData) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return errs.Store(err, "insert fetched bikes data")
	}
	return nil
}

// LatestWeather returns the newest row of kind requested at or after since, or nil when there is none.
func (r *FetchedSQLRepository) LatestWeather(ctx context.Context, kind ForecastType, since time.Time) (*FetchedWeatherData, error) {
	var rows []FetchedWeatherData
	err := r.db.WithContext(ctx).
		Where("forecast_type = ? AND timestamp_requested >= ?", kind, since.UTC()).
		Order("timestamp_requested DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, errs.Store(err, "query cached weather data")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ForecastCandidates returns rows of kind requested at or after since whose
// weather-info time lies in [from, to], in insertion order.
func (r *FetchedSQLRepository) ForecastCandidates(ctx context.Context, kind ForecastType, since, from, to time.Time) ([]FetchedWeatherData, error) {
	var rows []FetchedWeatherData
	err := r.db.WithContext(ctx).
		Where("forecast_type = ? AND timestamp_requested >= ?", kind, since.UTC()).
		Where("timestamp_weatherinfo >= ? AND timestamp_weatherinfo <= ?", from.UTC(), to.UTC()).
		Order("timestamp_requested ASC").
		Order("timestamp_weatherinfo ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Store(err, "query cached forecast data")
	}
	return rows, nil
}

func (r *FetchedSQLRepository) InsertWeather(ctx context.Context, rows []FetchedWeatherData) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return errs.Store(err, "insert fetched weather data")
	}
	return nil
}

// PurgeRequestedBefore deletes weather and bikes rows requested strictly before cutoff in one transaction.
func (r *FetchedSQLRepository) PurgeRequestedBefore(ctx context.Context, cutoff time.Time) (PurgeResult, error) {
	var result PurgeResult
	cutoff = cutoff.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		weather := tx.Where("timestamp_requested < ?", cutoff).Delete(&FetchedWeatherData{})
		if weather.Error != nil {
			return weather.Error
		}
		result.WeatherDeleted = weather.RowsAffected

		bikes := tx.Where("time_requested < ?", cutoff).Delete(&FetchedBikesData{})
		if bikes.Error != nil {
			return bikes.Error
		}
		result.BikesDeleted = bikes.RowsAffected

		return nil
	})
	if err != nil {
		return PurgeResult{}, errs.Store(err, "purge fetched cache rows")
	}
	return result, nil
}
