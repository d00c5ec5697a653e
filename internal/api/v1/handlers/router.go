package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmgilman/go/errors"

	"dublinbikes/station-service/internal/errs"
	"dublinbikes/station-service/internal/metrics"
)

type RouterConfig struct {
	Bikes    *BikesHandler
	Weather  *WeatherHandler
	Stations *StationsHandler
	// Ping reports store health for /healthz. Nil means always healthy.
	Ping func(ctx context.Context) error
}

func NewRouter(conf RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusNotFound, errs.ToResponse(errs.NotFound("route not found")))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusMethodNotAllowed, errs.Response{
			Error:          "method not allowed",
			Code:           "METHOD_NOT_ALLOWED",
			Classification: string(errors.ClassificationPermanent),
		})
	})

	router.Use(RequestIDMiddleware, AccessLogMiddleware, MetricsMiddleware)

	router.HandleFunc("/healthz", healthz(conf.Ping)).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/api/current_bikes", conf.Bikes.GetCurrentBikes).Methods(http.MethodGet)
	router.HandleFunc("/api/current_weather", conf.Weather.GetCurrentWeather).Methods(http.MethodGet)
	router.HandleFunc("/api/forecast_weather", conf.Weather.GetForecastWeather).Methods(http.MethodGet)
	router.HandleFunc("/api/stations", conf.Stations.ListStations).Methods(http.MethodGet)
	router.HandleFunc("/api/stations/{id}", conf.Stations.GetStation).Methods(http.MethodGet)
	router.HandleFunc("/api/stations/{id}/availability", conf.Stations.GetAvailability).Methods(http.MethodGet)

	return router
}

func healthz(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				respondWithError(w, r, errs.Store(err, "database unreachable"))
				return
			}
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
