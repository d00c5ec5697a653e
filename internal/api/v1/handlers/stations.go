package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"dublinbikes/station-service/internal/db/stations"
	"dublinbikes/station-service/internal/errs"
)

const dateLayout = "2006-01-02"

type availabilityQuery struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

type StationsHandler struct {
	repo     stations.Repository
	location *time.Location
	timeout  time.Duration
	now      func() time.Time
}

func NewStationsHandler(repo stations.Repository, location *time.Location, timeout time.Duration) *StationsHandler {
	if location == nil {
		location = time.UTC
	}
	return &StationsHandler{
		repo:     repo,
		location: location,
		timeout:  timeout,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to pick the default availability day.
func (h *StationsHandler) WithClock(now func() time.Time) *StationsHandler {
	h.now = now
	return h
}

func (h *StationsHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	rows, err := h.repo.ListStations(ctx)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	response := make([]StationResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, toStationResponse(row))
	}
	respondWithJSON(w, http.StatusOK, response)
}

func (h *StationsHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	id, err := stationID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	station, err := h.repo.GetStation(ctx, id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	latest, err := h.repo.LatestSnapshot(ctx, id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	response := toStationResponse(*station)
	if latest != nil {
		snapshot := toBikeStation(*latest)
		response.Latest = &snapshot
	}
	respondWithJSON(w, http.StatusOK, response)
}

func (h *StationsHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := stationID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	query := availabilityQuery{Date: r.URL.Query().Get("date")}
	if err := validate.Struct(query); err != nil {
		respondWithError(w, r, validationError(err))
		return
	}

	day := h.now().In(h.location)
	if query.Date != "" {
		// Already validated against dateLayout.
		day, _ = time.ParseInLocation(dateLayout, query.Date, h.location)
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if _, err := h.repo.GetStation(ctx, id); err != nil {
		respondWithError(w, r, err)
		return
	}
	rows, err := h.repo.AvailabilityOn(ctx, id, day)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	observations := make([]AvailabilityResponse, 0, len(rows))
	for _, row := range rows {
		observations = append(observations, AvailabilityResponse{
			LastUpdate:          row.LastUpdate,
			AvailableBikes:      row.AvailableBikes,
			AvailableBikeStands: row.AvailableBikeStands,
			Status:              row.Status,
		})
	}

	respondWithJSON(w, http.StatusOK, AvailabilityDayResponse{
		Number:       id,
		Date:         day.Format(dateLayout),
		Observations: observations,
	})
}

func stationID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errs.With(errs.InvalidInput("station id must be a positive integer"), "id", raw)
	}
	return id, nil
}
