package sweep_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/mocks"
	"dublinbikes/station-service/internal/sweep"
	"dublinbikes/station-service/internal/testhelpers"
)

const markerPath = "data/lastcachedelete.txt"

type SweeperTestSuite struct {
	suite.Suite
	fs      afero.Fs
	purger  *mocks.MockPurger
	dublin  *time.Location
	today   time.Time
	sweeper sweep.Sweeper
	ctx     context.Context
}

func (s *SweeperTestSuite) SetupTest() {
	var err error
	s.dublin, err = time.LoadLocation("Europe/Dublin")
	s.Require().NoError(err)

	s.fs = afero.NewMemMapFs()
	s.purger = mocks.NewMockPurger(s.T())
	s.today = time.Date(2026, 10, 16, 9, 30, 0, 0, s.dublin)
	s.sweeper = sweep.NewSweeper(s.fs, s.purger, markerPath, s.dublin, func() time.Time { return s.today })
	s.ctx = context.Background()
}

func (s *SweeperTestSuite) marker() string {
	content, err := afero.ReadFile(s.fs, markerPath)
	s.Require().NoError(err)
	return string(content)
}

func (s *SweeperTestSuite) TestSweepDeletesBeforeLocalMidnight() {
	midnight := time.Date(2026, 10, 16, 0, 0, 0, 0, s.dublin)
	s.purger.On("PurgeRequestedBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return cutoff.Equal(midnight)
	})).Return(fetched.PurgeResult{WeatherDeleted: 4, BikesDeleted: 110}, nil).Once()

	result, err := s.sweeper.Sweep(s.ctx)

	s.Require().NoError(err)
	s.Require().False(result.Skipped)
	s.Require().False(result.Failed)
	s.Require().Equal("2026-10-16", result.Day)
	s.Require().Equal(int64(4), result.WeatherDeleted)
	s.Require().Equal(int64(110), result.BikesDeleted)
	s.Require().Equal("2026-10-16\n", s.marker())

	exists, err := afero.Exists(s.fs, markerPath+".tmp")
	s.Require().NoError(err)
	s.Require().False(exists)
}

func (s *SweeperTestSuite) TestSecondSweepSameDayIsSkipped() {
	s.purger.On("PurgeRequestedBefore", mock.Anything, mock.Anything).
		Return(fetched.PurgeResult{WeatherDeleted: 1}, nil).Once()

	_, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)

	result, err := s.sweeper.Sweep(s.ctx)

	s.Require().NoError(err)
	s.Require().True(result.Skipped)
	s.Require().Zero(result.WeatherDeleted)
	s.Require().Zero(result.BikesDeleted)
}

func (s *SweeperTestSuite) TestStaleMarkerRunsAgain() {
	s.Require().NoError(afero.WriteFile(s.fs, markerPath, []byte("2026-10-15\n"), 0o644))
	s.purger.On("PurgeRequestedBefore", mock.Anything, mock.Anything).
		Return(fetched.PurgeResult{}, nil).Once()

	result, err := s.sweeper.Sweep(s.ctx)

	s.Require().NoError(err)
	s.Require().False(result.Skipped)
	s.Require().Equal("2026-10-16\n", s.marker())
}

func (s *SweeperTestSuite) TestFailedDeleteStillAdvancesMarker() {
	s.purger.On("PurgeRequestedBefore", mock.Anything, mock.Anything).
		Return(fetched.PurgeResult{}, errors.New("database is locked")).Once()

	result, err := s.sweeper.Sweep(s.ctx)

	s.Require().NoError(err)
	s.Require().True(result.Failed)
	s.Require().Equal("2026-10-16\n", s.marker())

	result, err = s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Require().True(result.Skipped)
}

func (s *SweeperTestSuite) TestOverrideToday() {
	override := time.Date(2026, 12, 24, 0, 0, 0, 0, s.dublin)
	s.purger.On("PurgeRequestedBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return cutoff.Equal(override)
	})).Return(fetched.PurgeResult{}, nil).Once()

	result, err := s.sweeper.SweepAt(s.ctx, override)

	s.Require().NoError(err)
	s.Require().Equal("2026-12-24", result.Day)
	s.Require().Equal("2026-12-24\n", s.marker())
}

func (s *SweeperTestSuite) TestConcurrentSweepsDeleteOnce() {
	s.purger.On("PurgeRequestedBefore", mock.Anything, mock.Anything).
		Return(fetched.PurgeResult{BikesDeleted: 7}, nil).Once()

	const callers = 8
	results := make([]sweep.Result, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := s.sweeper.Sweep(s.ctx)
			s.NoError(err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	ran := 0
	for _, result := range results {
		if !result.Skipped {
			ran++
			s.Require().Equal(int64(7), result.BikesDeleted)
		}
	}
	s.Require().Equal(1, ran)
}

func (s *SweeperTestSuite) TestMarkerWriteFailureIsReturned() {
	readOnly := afero.NewReadOnlyFs(afero.NewMemMapFs())
	sweeper := sweep.NewSweeper(readOnly, s.purger, markerPath, s.dublin, func() time.Time { return s.today })
	s.purger.On("PurgeRequestedBefore", mock.Anything, mock.Anything).
		Return(fetched.PurgeResult{}, nil).Once()

	_, err := sweeper.Sweep(s.ctx)

	s.Require().Error(err)
}

// Rows requested before today's local midnight are deleted, later ones are kept.
func (s *SweeperTestSuite) TestBoundaryAgainstStore() {
	dublin := s.dublin
	ctx := s.ctx
	repo := fetched.NewRepository(testhelpers.NewSQLiteDB(s.T()))

	dayBefore := time.Date(2026, 10, 15, 23, 59, 59, 0, dublin).UTC()
	today := time.Date(2026, 10, 16, 0, 0, 0, 0, dublin).UTC()
	s.Require().NoError(repo.InsertBikes(ctx, []fetched.FetchedBikesData{{TimeRequested: dayBefore, StationID: 10, Status: "OPEN"}}))
	s.Require().NoError(repo.InsertBikes(ctx, []fetched.FetchedBikesData{{TimeRequested: today, StationID: 10, Status: "OPEN"}}))
	s.Require().NoError(repo.InsertWeather(ctx, []fetched.FetchedWeatherData{
		{TimestampRequested: dayBefore, TimestampWeatherinfo: dayBefore, ForecastType: fetched.ForecastCurrent, TargetDatetime: dayBefore},
	}))

	sweeper := sweep.NewSweeper(afero.NewMemMapFs(), repo, markerPath, dublin, nil)
	result, err := sweeper.SweepAt(ctx, time.Date(2026, 10, 16, 18, 0, 0, 0, dublin))

	s.Require().NoError(err)
	s.Require().Equal(int64(1), result.BikesDeleted)
	s.Require().Equal(int64(1), result.WeatherDeleted)

	remaining, err := repo.RecentBikes(ctx, today.Add(-48*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Require().True(remaining[0].TimeRequested.Equal(today))

	again, err := sweeper.SweepAt(ctx, time.Date(2026, 10, 16, 23, 0, 0, 0, dublin))
	s.Require().NoError(err)
	s.Require().True(again.Skipped)
}

func TestSweeperTestSuite(t *testing.T) {
	suite.Run(t, new(SweeperTestSuite))
}
