package handlers

import (
	"context"
	"net/http"
	"time"

	"dublinbikes/station-service/internal/service"
)

type BikesHandler struct {
	cache   service.CacheService
	timeout time.Duration
}

func NewBikesHandler(cache service.CacheService, timeout time.Duration) *BikesHandler {
	return &BikesHandler{
		cache:   cache,
		timeout: timeout,
	}
}

func (h *BikesHandler) GetCurrentBikes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	rows, err := h.cache.CurrentBikes(ctx)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	response := make([]BikeStation, 0, len(rows))
	for _, row := range rows {
		response = append(response, toBikeStation(row))
	}

	respondWithJSON(w, http.StatusOK, response)
}
