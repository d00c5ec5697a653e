package stations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/db/stations"
	"dublinbikes/station-service/internal/errs"
	"dublinbikes/station-service/internal/testhelpers"
)

type StationRepositorySuite struct {
	suite.Suite
	repo    stations.Repository
	fetched fetched.Repository
	ctx     context.Context
}

func (s *StationRepositorySuite) SetupTest() {
	db := testhelpers.NewSQLiteDB(s.T())
	s.repo = stations.NewRepository(db)
	s.fetched = fetched.NewRepository(db)
	s.ctx = context.Background()
}

func (s *StationRepositorySuite) station(id int, name string) stations.Station {
	return stations.Station{
		StationID:   id,
		Address:     name,
		Banking:     true,
		BikeStands:  30,
		Name:        name,
		PositionLat: 53.34,
		PositionLng: -6.26,
	}
}

func (s *StationRepositorySuite) TestUpsertStations() {
	s.Run("Inserts new stations", func() {
		err := s.repo.UpsertStations(s.ctx, []stations.Station{
			s.station(42, "SMITHFIELD NORTH"),
			s.station(10, "DAME STREET"),
		})
		s.Require().NoError(err)

		list, err := s.repo.ListStations(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(list, 2)
		s.Require().Equal(10, list[0].StationID)
		s.Require().Equal(42, list[1].StationID)
	})

	s.Run("Overwrites static columns of known stations", func() {
		renamed := s.station(10, "DAME ST")
		renamed.BikeStands = 16
		s.Require().NoError(s.repo.UpsertStations(s.ctx, []stations.Station{renamed}))

		station, err := s.repo.GetStation(s.ctx, 10)
		s.Require().NoError(err)
		s.Require().Equal("DAME ST", station.Name)
		s.Require().Equal(16, station.BikeStands)

		list, err := s.repo.ListStations(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(list, 2)
	})
}

func (s *StationRepositorySuite) TestGetStationNotFound() {
	station, err := s.repo.GetStation(s.ctx, 999)

	s.Require().Error(err)
	s.Require().True(errs.IsNotFound(err))
	s.Require().Nil(station)
}

func (s *StationRepositorySuite) TestInsertAvailabilityIgnoresDuplicates() {
	update := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	record := stations.Availability{StationID: 10, LastUpdate: update, AvailableBikes: 3, AvailableBikeStands: 27, Status: "OPEN"}

	inserted, err := s.repo.InsertAvailability(s.ctx, []stations.Availability{record})
	s.Require().NoError(err)
	s.Require().Equal(int64(1), inserted)

	record.AvailableBikes = 5
	inserted, err = s.repo.InsertAvailability(s.ctx, []stations.Availability{record})
	s.Require().NoError(err)
	s.Require().Equal(int64(0), inserted)

	records, err := s.repo.AvailabilityOn(s.ctx, 10, update)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Require().Equal(3, records[0].AvailableBikes)
}

func (s *StationRepositorySuite) TestAvailabilityOnUsesLocalDay() {
	dublin, err := time.LoadLocation("Europe/Dublin")
	s.Require().NoError(err)

	// Dublin is UTC+1 in summer: local midnight of 2026-07-01 is 23:00 UTC on 2026-06-30.
	records := []stations.Availability{
		{StationID: 7, LastUpdate: time.Date(2026, 6, 30, 22, 59, 0, 0, time.UTC), Status: "OPEN"},
		{StationID: 7, LastUpdate: time.Date(2026, 6, 30, 23, 0, 0, 0, time.UTC), Status: "OPEN"},
		{StationID: 7, LastUpdate: time.Date(2026, 7, 1, 22, 59, 0, 0, time.UTC), Status: "OPEN"},
		{StationID: 7, LastUpdate: time.Date(2026, 7, 1, 23, 0, 0, 0, time.UTC), Status: "OPEN"},
		{StationID: 8, LastUpdate: time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC), Status: "OPEN"},
	}
	_, err = s.repo.InsertAvailability(s.ctx, records)
	s.Require().NoError(err)

	day, err := s.repo.AvailabilityOn(s.ctx, 7, time.Date(2026, 7, 1, 15, 0, 0, 0, dublin))

	s.Require().NoError(err)
	s.Require().Len(day, 2)
	s.Require().True(day[0].LastUpdate.Equal(time.Date(2026, 6, 30, 23, 0, 0, 0, time.UTC)))
	s.Require().True(day[1].LastUpdate.Equal(time.Date(2026, 7, 1, 22, 59, 0, 0, time.UTC)))
}

func (s *StationRepositorySuite) TestLatestSnapshot() {
	s.Run("Returns nil when the station was never cached", func() {
		snapshot, err := s.repo.LatestSnapshot(s.ctx, 10)
		s.Require().NoError(err)
		s.Require().Nil(snapshot)
	})

	s.Run("Returns the newest cached row", func() {
		older := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
		newer := older.Add(10 * time.Minute)
		s.Require().NoError(s.fetched.InsertBikes(s.ctx, []fetched.FetchedBikesData{
			{TimeRequested: older, StationID: 10, AvailableBikes: 1, Status: "OPEN"},
		}))
		s.Require().NoError(s.fetched.InsertBikes(s.ctx, []fetched.FetchedBikesData{
			{TimeRequested: newer, StationID: 10, AvailableBikes: 4, Status: "OPEN"},
			{TimeRequested: newer, StationID: 11, AvailableBikes: 9, Status: "OPEN"},
		}))

		snapshot, err := s.repo.LatestSnapshot(s.ctx, 10)
		s.Require().NoError(err)
		s.Require().NotNil(snapshot)
		s.Require().Equal(4, snapshot.AvailableBikes)
		s.Require().True(snapshot.TimeRequested.Equal(newer))
	})
}

func TestStationRepositorySuite(t *testing.T) {
	suite.Run(t, new(StationRepositorySuite))
}

func TestGetStationWrapsQueryFailures(t *testing.T) {
	db, mock := testhelpers.NewMockDB(t)
	repo := stations.NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "station" WHERE station_id = \$1 ORDER BY "station"."station_id" LIMIT \$2`).
		WillReturnError(errors.New("connection refused"))

	station, err := repo.GetStation(context.Background(), 10)

	require.Error(t, err)
	require.True(t, errs.IsStore(err))
	require.Nil(t, station)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListStationsQueriesInStationOrder(t *testing.T) {
	db, mock := testhelpers.NewMockDB(t)
	repo := stations.NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "station" ORDER BY station_id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"station_id", "name"}).
			AddRow(1, "CLARENDON ROW").
			AddRow(2, "BLESSINGTON STREET"))

	list, err := repo.ListStations(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "BLESSINGTON STREET", list[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityReadBackIsUTC(t *testing.T) {
	db, mock := testhelpers.NewMockDB(t)
	repo := stations.NewRepository(db)

	dublin, err := time.LoadLocation("Europe/Dublin")
	require.NoError(t, err)
	updated := time.Date(2026, 10, 16, 9, 59, 0, 0, dublin)

	mock.ExpectQuery(`SELECT \* FROM "availability"`).
		WillReturnRows(sqlmock.NewRows([]string{"station_id", "last_update", "available_bikes", "status"}).
			AddRow(5, updated, 3, "OPEN"))

	rows, err := repo.AvailabilityOn(context.Background(), 5, updated)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, time.UTC, rows[0].LastUpdate.Location())
	require.True(t, rows[0].LastUpdate.Equal(updated))
	require.NoError(t, mock.ExpectationsWereMet())
}
