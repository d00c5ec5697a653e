package stations

import (
	"context"
	"time"

	"github.com/jmgilman/go/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/errs"
)

type Repository interface {
	UpsertStations(ctx context.Context, stations []Station) error
	ListStations(ctx context.Context) ([]Station, error)
	GetStation(ctx context.Context, stationID int) (*Station, error)

	InsertAvailability(ctx context.Context, records []Availability) (int64, error)
	AvailabilityOn(ctx context.Context, stationID int, day time.Time) ([]Availability, error)

	LatestSnapshot(ctx context.Context, stationID int) (*fetched.FetchedBikesData, error)
}

type StationSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &StationSQLRepository{db: db}
}

// UpsertStations inserts stations and overwrites the static columns of known ones.
func (r *StationSQLRepository) UpsertStations(ctx context.Context, stations []Station) error {
	if len(stations) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "station_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"address", "banking", "bonus", "bike_stands", "name", "position_lat", "position_lng",
			}),
		}).
		Create(&stations).Error
	if err != nil {
		return errs.Store(err, "upsert stations")
	}
	return nil
}

func (r *StationSQLRepository) ListStations(ctx context.Context) ([]Station, error) {
	var stations []Station
	if err := r.db.WithContext(ctx).Order("station_id ASC").Find(&stations).Error; err != nil {
		return nil, errs.Store(err, "list stations")
	}
	return stations, nil
}

func (r *StationSQLRepository) GetStation(ctx context.Context, stationID int) (*Station, error) {
	var station Station
	err := r.db.WithContext(ctx).Where("station_id = ?", stationID).First(&station).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.With(errs.NotFoundf("station %d not found", stationID), "station_id", stationID)
	}
	if err != nil {
		return nil, errs.Store(err, "get station")
	}
	return &station, nil
}

// InsertAvailability appends observations, ignoring ones already recorded, and
// returns how many were new.
func (r *StationSQLRepository) InsertAvailability(ctx context.Context, records []Availability) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	for i := range records {
		records[i].LastUpdate = records[i].LastUpdate.UTC()
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&records)
	if result.Error != nil {
		return 0, errs.Store(result.Error, "insert availability")
	}
	return result.RowsAffected, nil
}

// AvailabilityOn returns the observations of a station during the calendar day
// containing day, in day's location.
func (r *StationSQLRepository) AvailabilityOn(ctx context.Context, stationID int, day time.Time) ([]Availability, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var records []Availability
	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Where("last_update >= ? AND last_update < ?", start.UTC(), end.UTC()).
		Order("last_update ASC").
		Find(&records).Error
	if err != nil {
		return nil, errs.Store(err, "query availability")
	}
	return records, nil
}

// LatestSnapshot returns the newest cached bikes row of a station, or nil when none is cached.
func (r *StationSQLRepository) LatestSnapshot(ctx context.Context, stationID int) (*fetched.FetchedBikesData, error) {
	var rows []fetched.FetchedBikesData
	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("time_requested DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, errs.Store(err, "query latest station snapshot")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
