package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/metrics"
	"dublinbikes/station-service/internal/providers"
)

func (s *cacheService) CurrentWeather(ctx context.Context) (*fetched.FetchedWeatherData, error) {
	kind := string(fetched.ForecastCurrent)
	since := s.opts.Now().UTC().Add(-s.opts.CurrentWeatherTTL)

	cached, err := s.repo.LatestWeather(ctx, fetched.ForecastCurrent, since)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(kind, "error").Inc()
		return nil, err
	}
	if cached != nil {
		metrics.CacheLookupsTotal.WithLabelValues(kind, "hit").Inc()
		log.Debug().Time("requested", cached.TimestampRequested).Msg("Serving cached current weather")
		return cached, nil
	}

	metrics.CacheLookupsTotal.WithLabelValues(kind, "miss").Inc()
	log.Info().Msg("Current weather cache miss, fetching observation")

	observation, err := s.weather.FetchCurrentWeather(ctx)
	if err != nil {
		return nil, err
	}

	s.sweepBeforeWrite(ctx)

	row := weatherRow(fetched.ForecastCurrent, s.requestTime(), observation)
	if err := s.repo.InsertWeather(ctx, []fetched.FetchedWeatherData{row}); err != nil {
		return nil, err
	}
	metrics.CacheRowsPersistedTotal.WithLabelValues("fetched_weather_data").Inc()

	return &row, nil
}

// weatherRow maps an observation onto a cache row. Only current rows keep
// sunrise and sunset; every row targets its own weather-info time.
func weatherRow(kind fetched.ForecastType, requested time.Time, observation providers.WeatherObservation) fetched.FetchedWeatherData {
	info := observation.Time.UTC().Truncate(time.Microsecond)

	row := fetched.FetchedWeatherData{
		TimestampRequested:   requested,
		TimestampWeatherinfo: info,
		ForecastType:         kind,
		TargetDatetime:       info,
		FeelsLike:            observation.FeelsLike,
		Humidity:             observation.Humidity,
		Pressure:             observation.Pressure,
		Temp:                 observation.Temp,
		UVI:                  observation.UVI,
		WeatherID:            observation.Icon,
		WindGust:             observation.WindGust,
		WindSpeed:            observation.WindSpeed,
		Rain1h:               observation.Rain,
		Snow1h:               observation.Snow,
	}

	if kind == fetched.ForecastCurrent {
		row.Sunrise = utcPointer(observation.Sunrise)
		row.Sunset = utcPointer(observation.Sunset)
	}

	return row
}

func utcPointer(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}
