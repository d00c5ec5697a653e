package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgTestContainers "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"dublinbikes/station-service/config"
	"dublinbikes/station-service/internal/api/v1/handlers"
	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/db/schema"
	"dublinbikes/station-service/internal/db/stations"
	"dublinbikes/station-service/internal/errs"
	"dublinbikes/station-service/internal/mocks"
	"dublinbikes/station-service/internal/providers"
	"dublinbikes/station-service/internal/service"
	"dublinbikes/station-service/internal/sweep"
)

var (
	postgresContainer *pgTestContainers.PostgresContainer
	sharedDB          *gorm.DB
)

type testSetup struct {
	router           *mux.Router
	stationsProvider *mocks.MockStationsProvider
	weatherProvider  *mocks.MockWeatherProvider
	fetchedRepo      fetched.Repository
	stationRepo      stations.Repository
	markerFs         afero.Fs
	db               *gorm.DB
}

const (
	dbName     = "test_api_database"
	dbUser     = "test_user"
	dbPassword = "test_password"
	markerPath = "data/lastcachedelete.txt"
)

func init() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func SetupPostgres(t *testing.T) (*gorm.DB, func()) {
	if sharedDB != nil {
		err := sharedDB.Migrator().DropTable(schema.Models()...)
		require.NoError(t, err)

		err = schema.Migrate(sharedDB)
		require.NoError(t, err)

		return sharedDB, func() {}
	}

	log.Info().Msg("Setting up new PostgreSQL container")

	ctx := context.Background()

	var err error
	postgresContainer, err = pgTestContainers.Run(ctx,
		"postgres:13.3",
		pgTestContainers.WithDatabase(dbName),
		pgTestContainers.WithUsername(dbUser),
		pgTestContainers.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(10*time.Second)),
	)
	require.NoError(t, err)

	host, err := postgresContainer.Host(context.Background())
	require.NoError(t, err)

	endpoint, err := postgresContainer.Endpoint(context.Background(), "")
	require.NoError(t, err)

	parts := strings.Split(endpoint, ":")
	port := parts[1]

	sharedDB, err = schema.Open(&config.Config{
		DBDriver:   "postgres",
		DBHost:     host,
		DBPort:     port,
		DBUser:     dbUser,
		DBPassword: dbPassword,
		DBName:     dbName,
	})
	require.NoError(t, err)
	log.Info().Msgf("Connected to database: %s on %s:%s", dbName, host, port)

	sqlDB, err := sharedDB.DB()
	require.NoError(t, err)

	err = sqlDB.Ping()
	require.NoError(t, err)

	err = schema.Migrate(sharedDB)
	require.NoError(t, err)

	return sharedDB, func() {
		if postgresContainer != nil {
			log.Info().Msg("Terminating PostgreSQL container")
			if err := postgresContainer.Terminate(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to terminate PostgreSQL container")
			}
		}
	}
}

func setupTest(t *testing.T) *testSetup {
	db, _ := SetupPostgres(t)

	dublin, err := time.LoadLocation("Europe/Dublin")
	require.NoError(t, err)

	stationsProvider := mocks.NewMockStationsProvider(t)
	weatherProvider := mocks.NewMockWeatherProvider(t)
	fetchedRepo := fetched.NewRepository(db)
	stationRepo := stations.NewRepository(db)
	markerFs := afero.NewMemMapFs()

	sweeper := sweep.NewSweeper(markerFs, fetchedRepo, markerPath, dublin, nil)
	cacheService := service.NewCacheService(fetchedRepo, stationsProvider, weatherProvider, sweeper, service.Options{
		BikesTTL:          5 * time.Minute,
		CurrentWeatherTTL: 15 * time.Minute,
		ForecastTTL:       time.Hour,
		SearchTolerance:   3 * time.Hour,
		MatchTolerance:    91 * time.Minute,
	})

	router := handlers.NewRouter(handlers.RouterConfig{
		Bikes:    handlers.NewBikesHandler(cacheService, 10*time.Second),
		Weather:  handlers.NewWeatherHandler(cacheService, dublin, 10*time.Second),
		Stations: handlers.NewStationsHandler(stationRepo, dublin, 10*time.Second),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	return &testSetup{
		router:           router,
		stationsProvider: stationsProvider,
		weatherProvider:  weatherProvider,
		fetchedRepo:      fetchedRepo,
		stationRepo:      stationRepo,
		markerFs:         markerFs,
		db:               db,
	}
}

func (ts *testSetup) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func floatPtr(v float64) *float64 { return &v }

func observation(number, bikes int, lastUpdate time.Time) providers.StationObservation {
	return providers.StationObservation{
		Number:              number,
		Name:                fmt.Sprintf("STATION %d", number),
		Address:             fmt.Sprintf("Address %d", number),
		Position:            providers.Position{Lat: 53.34, Lng: -6.26},
		BikeStands:          30,
		AvailableBikeStands: 30 - bikes,
		AvailableBikes:      bikes,
		Status:              "OPEN",
		LastUpdate:          &lastUpdate,
	}
}

func TestStationService(t *testing.T) {
	_, cleanup := SetupPostgres(t)
	defer cleanup()

	t.Run("BikesMissThenHit", func(t *testing.T) {
		ts := setupTest(t)
		now := time.Now().UTC()

		ts.stationsProvider.On("FetchStations", mock.Anything).Return([]providers.StationObservation{
			observation(12, 5, now.Add(-time.Minute)),
			observation(3, 9, now.Add(-time.Minute)),
		}, nil).Once()

		first := ts.get("/api/current_bikes")
		require.Equal(t, http.StatusOK, first.Code)

		var firstBody []handlers.BikeStation
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstBody))
		require.Len(t, firstBody, 2)
		assert.Equal(t, 3, firstBody[0].Number)
		assert.Equal(t, 12, firstBody[1].Number)

		second := ts.get("/api/current_bikes")
		require.Equal(t, http.StatusOK, second.Code)

		var secondBody []handlers.BikeStation
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondBody))
		require.Len(t, secondBody, 2)
		assert.Equal(t, firstBody[0].Number, secondBody[0].Number)
		assert.True(t, firstBody[0].TimeRequested.Equal(secondBody[0].TimeRequested))
		assert.Equal(t, first.Body.String(), second.Body.String())

		var count int64
		require.NoError(t, ts.db.Model(&fetched.FetchedBikesData{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)

		// Marker written by the sweep that ran ahead of the insert.
		exists, err := afero.Exists(ts.markerFs, markerPath)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("MissEvictsPreviousDays", func(t *testing.T) {
		ts := setupTest(t)
		now := time.Now().UTC()
		old := now.Add(-72 * time.Hour).Truncate(time.Microsecond)

		require.NoError(t, ts.fetchedRepo.InsertBikes(context.Background(), []fetched.FetchedBikesData{
			{TimeRequested: old, StationID: 1, Status: "OPEN"},
		}))
		require.NoError(t, ts.fetchedRepo.InsertWeather(context.Background(), []fetched.FetchedWeatherData{
			{TimestampRequested: old, TimestampWeatherinfo: old, ForecastType: fetched.ForecastHourly, TargetDatetime: old},
		}))

		ts.stationsProvider.On("FetchStations", mock.Anything).Return([]providers.StationObservation{
			observation(1, 2, now),
		}, nil).Once()

		w := ts.get("/api/current_bikes")
		require.Equal(t, http.StatusOK, w.Code)

		var bikes []fetched.FetchedBikesData
		require.NoError(t, ts.db.Find(&bikes).Error)
		require.Len(t, bikes, 1)
		assert.True(t, bikes[0].TimeRequested.After(old))

		var weatherRows int64
		require.NoError(t, ts.db.Model(&fetched.FetchedWeatherData{}).Count(&weatherRows).Error)
		assert.Zero(t, weatherRows)
	})

	t.Run("ForecastMissPersistsBatchThenHits", func(t *testing.T) {
		ts := setupTest(t)
		base := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)

		entries := make([]providers.WeatherObservation, 0, 8)
		for i := 0; i < 8; i++ {
			entries = append(entries, providers.WeatherObservation{
				Time: base.Add(time.Duration(3*i) * time.Hour),
				Temp: floatPtr(10 + float64(i)),
				Icon: "10d",
			})
		}
		ts.weatherProvider.On("FetchForecastWeather", mock.Anything).Return(entries, nil).Once()

		target := base.Add(6*time.Hour + 20*time.Minute).Format(time.RFC3339)
		first := ts.get("/api/forecast_weather?forecast_type=hourly&target_datetime=" + target)
		require.Equal(t, http.StatusOK, first.Code)

		var firstBody handlers.WeatherResponse
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstBody))
		assert.True(t, firstBody.TimestampWeatherinfo.Equal(base.Add(6*time.Hour)))
		require.NotNil(t, firstBody.Temp)
		assert.Equal(t, 12.0, *firstBody.Temp)

		var count int64
		require.NoError(t, ts.db.Model(&fetched.FetchedWeatherData{}).Where("forecast_type = ?", "hourly").Count(&count).Error)
		assert.Equal(t, int64(8), count)

		second := ts.get("/api/forecast_weather?forecast_type=hourly&target_datetime=" + base.Add(9*time.Hour-10*time.Minute).Format(time.RFC3339))
		require.Equal(t, http.StatusOK, second.Code)

		var secondBody handlers.WeatherResponse
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondBody))
		assert.True(t, secondBody.TimestampWeatherinfo.Equal(base.Add(9*time.Hour)))
	})

	t.Run("CurrentWeatherUpstreamFailure", func(t *testing.T) {
		ts := setupTest(t)
		ts.weatherProvider.On("FetchCurrentWeather", mock.Anything).
			Return(providers.WeatherObservation{}, errs.Fetch(nil, "openweather request failed: connection refused")).Once()

		w := ts.get("/api/current_weather")

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var count int64
		require.NoError(t, ts.db.Model(&fetched.FetchedWeatherData{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("StationDetailAndAvailability", func(t *testing.T) {
		ts := setupTest(t)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Microsecond)

		require.NoError(t, ts.stationRepo.UpsertStations(ctx, []stations.Station{
			{StationID: 42, Name: "SMITHFIELD NORTH", Address: "Smithfield North", BikeStands: 30},
		}))
		inserted, err := ts.stationRepo.InsertAvailability(ctx, []stations.Availability{
			{StationID: 42, LastUpdate: now.Add(-time.Minute), AvailableBikes: 8, AvailableBikeStands: 22, Status: "OPEN"},
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), inserted)
		require.NoError(t, ts.fetchedRepo.InsertBikes(ctx, []fetched.FetchedBikesData{
			{TimeRequested: now, StationID: 42, AvailableBikes: 8, Status: "OPEN"},
		}))

		w := ts.get("/api/stations/42")
		require.Equal(t, http.StatusOK, w.Code)

		var station handlers.StationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &station))
		assert.Equal(t, "SMITHFIELD NORTH", station.Name)
		require.NotNil(t, station.Latest)
		assert.Equal(t, 8, station.Latest.AvailableBikes)

		dublin, err := time.LoadLocation("Europe/Dublin")
		require.NoError(t, err)
		w = ts.get("/api/stations/42/availability?date=" + now.Add(-time.Minute).In(dublin).Format("2006-01-02"))
		require.Equal(t, http.StatusOK, w.Code)

		var day handlers.AvailabilityDayResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
		assert.Len(t, day.Observations, 1)

		w = ts.get("/api/stations/7")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Healthz", func(t *testing.T) {
		ts := setupTest(t)

		w := ts.get("/healthz")

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
