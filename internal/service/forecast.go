package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/errs"
	"dublinbikes/station-service/internal/metrics"
)

// ForecastWeather returns the forecast row nearest to target. Cached rows are
// searched within SearchTolerance of target; on a miss the whole upstream
// forecast is persisted and the entry closest to target, strictly within
// MatchTolerance, is returned.
func (s *cacheService) ForecastWeather(ctx context.Context, kind fetched.ForecastType, target time.Time) (*fetched.FetchedWeatherData, error) {
	switch kind {
	case fetched.ForecastCurrent:
		return s.CurrentWeather(ctx)
	case fetched.ForecastHourly, fetched.ForecastDaily:
	default:
		return nil, errs.With(errs.InvalidInputf("unknown forecast type %q", kind), "forecast_type", string(kind))
	}
	if target.IsZero() {
		return nil, errs.InvalidInput("target time is required")
	}

	target = target.UTC()
	label := string(kind)
	since := s.opts.Now().UTC().Add(-s.opts.ForecastTTL)

	candidates, err := s.repo.ForecastCandidates(ctx, kind, since,
		target.Add(-s.opts.SearchTolerance), target.Add(s.opts.SearchTolerance))
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(label, "error").Inc()
		return nil, err
	}
	if i := nearest(candidates, target, s.opts.SearchTolerance, true); i >= 0 {
		metrics.CacheLookupsTotal.WithLabelValues(label, "hit").Inc()
		log.Debug().
			Str("forecast_type", label).
			Time("target", target).
			Time("weatherinfo", candidates[i].TimestampWeatherinfo).
			Msg("Serving cached forecast")
		return &candidates[i], nil
	}

	metrics.CacheLookupsTotal.WithLabelValues(label, "miss").Inc()
	log.Info().Str("forecast_type", label).Time("target", target).Msg("Forecast cache miss, fetching forecast")

	observations, err := s.weather.FetchForecastWeather(ctx)
	if err != nil {
		return nil, err
	}

	s.sweepBeforeWrite(ctx)

	requested := s.requestTime()
	seen := make(map[time.Time]struct{}, len(observations))
	rows := make([]fetched.FetchedWeatherData, 0, len(observations))
	for _, observation := range observations {
		row := weatherRow(kind, requested, observation)
		if _, dup := seen[row.TimestampWeatherinfo]; dup {
			log.Warn().Time("weatherinfo", row.TimestampWeatherinfo).Msg("Dropping duplicate forecast entry")
			continue
		}
		seen[row.TimestampWeatherinfo] = struct{}{}
		rows = append(rows, row)
	}

	if err := s.repo.InsertWeather(ctx, rows); err != nil {
		return nil, err
	}
	metrics.CacheRowsPersistedTotal.WithLabelValues("fetched_weather_data").Add(float64(len(rows)))

	i := nearest(rows, target, s.opts.MatchTolerance, false)
	if i < 0 {
		return nil, errs.With(errs.NotFound("no forecast for that time"), "target_datetime", target.Format(time.RFC3339))
	}
	return &rows[i], nil
}

// nearest returns the index of the row whose weather-info time is closest to
// target and within tolerance, or -1. Ties keep the lower index.
func nearest(rows []fetched.FetchedWeatherData, target time.Time, tolerance time.Duration, inclusive bool) int {
	best := -1
	var bestDistance time.Duration
	for i := range rows {
		distance := absDuration(rows[i].TimestampWeatherinfo.Sub(target))
		if distance > tolerance || (!inclusive && distance == tolerance) {
			continue
		}
		if best < 0 || distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
