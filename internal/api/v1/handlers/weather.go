package handlers

import (
	"context"
	"net/http"
	"time"

	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/errs"
	"dublinbikes/station-service/internal/service"
)

// Layouts accepted for a target without an offset, read in the handler's zone.
var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type forecastQuery struct {
	ForecastType   string `query:"forecast_type" validate:"oneof=current hourly daily"`
	TargetDatetime string `query:"target_datetime" validate:"required"`
}

type WeatherHandler struct {
	cache    service.CacheService
	location *time.Location
	timeout  time.Duration
}

func NewWeatherHandler(cache service.CacheService, location *time.Location, timeout time.Duration) *WeatherHandler {
	if location == nil {
		location = time.UTC
	}
	return &WeatherHandler{
		cache:    cache,
		location: location,
		timeout:  timeout,
	}
}

func (h *WeatherHandler) GetCurrentWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	row, err := h.cache.CurrentWeather(ctx)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toWeatherResponse(row))
}

func (h *WeatherHandler) GetForecastWeather(w http.ResponseWriter, r *http.Request) {
	query := forecastQuery{
		ForecastType:   r.URL.Query().Get("forecast_type"),
		TargetDatetime: r.URL.Query().Get("target_datetime"),
	}
	if query.ForecastType == "" {
		query.ForecastType = string(fetched.ForecastCurrent)
	}
	if err := validate.Struct(query); err != nil {
		respondWithError(w, r, validationError(err))
		return
	}

	target, err := parseTarget(query.TargetDatetime, h.location)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	row, err := h.cache.ForecastWeather(ctx, fetched.ForecastType(query.ForecastType), target)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toWeatherResponse(row))
}

// parseTarget reads an RFC3339 instant, or a wall-clock time in location.
func parseTarget(value string, location *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, value, location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.With(
		errs.InvalidInput("target_datetime must be RFC3339 or YYYY-MM-DDTHH:MM[:SS]"),
		"target_datetime", value,
	)
}
