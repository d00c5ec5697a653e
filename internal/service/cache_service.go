package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"dublinbikes/station-service/config"
	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/providers"
	"dublinbikes/station-service/internal/sweep"
)

// CacheService answers bike and weather lookups from cached snapshots while
// they are fresh, and fetches, persists and returns new ones otherwise.
type CacheService interface {
	CurrentBikes(ctx context.Context) ([]fetched.FetchedBikesData, error)
	CurrentWeather(ctx context.Context) (*fetched.FetchedWeatherData, error)
	ForecastWeather(ctx context.Context, kind fetched.ForecastType, target time.Time) (*fetched.FetchedWeatherData, error)
}

type Options struct {
	BikesTTL          time.Duration
	CurrentWeatherTTL time.Duration
	// ForecastTTL applies to hourly and daily rows alike.
	ForecastTTL     time.Duration
	SearchTolerance time.Duration
	MatchTolerance  time.Duration
	Now             func() time.Time
}

func OptionsFromConfig(conf *config.Config) Options {
	return Options{
		BikesTTL:          conf.BikesCacheTTL,
		CurrentWeatherTTL: conf.CurrentWeatherCacheTTL,
		ForecastTTL:       conf.ForecastCacheTTL,
		SearchTolerance:   conf.ForecastSearchTolerance,
		MatchTolerance:    conf.ForecastMatchTolerance,
	}
}

type cacheService struct {
	repo     fetched.Repository
	stations providers.StationsProvider
	weather  providers.WeatherProvider
	sweeper  sweep.Sweeper
	opts     Options
}

func NewCacheService(
	repo fetched.Repository,
	stationsProvider providers.StationsProvider,
	weatherProvider providers.WeatherProvider,
	sweeper sweep.Sweeper,
	opts Options,
) CacheService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &cacheService{
		repo:     repo,
		stations: stationsProvider,
		weather:  weatherProvider,
		sweeper:  sweeper,
		opts:     opts,
	}
}

// requestTime is the shared timestamp of one fetch group, at the precision the store keeps.
func (s *cacheService) requestTime() time.Time {
	return s.opts.Now().UTC().Truncate(time.Microsecond)
}

// sweepBeforeWrite evicts old snapshots ahead of a cache write. Failures never block the write.
func (s *cacheService) sweepBeforeWrite(ctx context.Context) {
	if s.sweeper == nil {
		return
	}
	// A caller that goes away must not cost the day its eviction.
	result, err := s.sweeper.Sweep(context.WithoutCancel(ctx))
	if err != nil {
		log.Error().Err(err).Msg("Cache sweep could not update its marker")
		return
	}
	if result.Failed {
		log.Warn().Str("day", result.Day).Msg("Cache sweep advanced without deleting old snapshots")
	}
}
