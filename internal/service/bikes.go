package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/metrics"
)

const kindBikes = "bikes"

// CurrentBikes returns every bikes row inside the freshness window, newest fetch
// first. On a miss it fetches the station feed once and returns the persisted group.
func (s *cacheService) CurrentBikes(ctx context.Context) ([]fetched.FetchedBikesData, error) {
	since := s.opts.Now().UTC().Add(-s.opts.BikesTTL)

	rows, err := s.repo.RecentBikes(ctx, since)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(kindBikes, "error").Inc()
		return nil, err
	}
	if len(rows) > 0 {
		metrics.CacheLookupsTotal.WithLabelValues(kindBikes, "hit").Inc()
		log.Debug().Int("rows", len(rows)).Msg("Serving cached bikes data")
		return rows, nil
	}

	metrics.CacheLookupsTotal.WithLabelValues(kindBikes, "miss").Inc()
	log.Info().Msg("Bikes cache miss, fetching station feed")

	observations, err := s.stations.FetchStations(ctx)
	if err != nil {
		return nil, err
	}

	s.sweepBeforeWrite(ctx)

	requested := s.requestTime()
	seen := make(map[int]struct{}, len(observations))
	rows = make([]fetched.FetchedBikesData, 0, len(observations))
	for _, observation := range observations {
		if _, dup := seen[observation.Number]; dup {
			log.Warn().Int("station_id", observation.Number).Msg("Dropping duplicate station in feed")
			continue
		}
		seen[observation.Number] = struct{}{}

		row := fetched.FetchedBikesData{
			TimeRequested:       requested,
			StationID:           observation.Number,
			AvailableBikes:      observation.AvailableBikes,
			AvailableBikeStands: observation.AvailableBikeStands,
			Status:              observation.Status,
			Address:             observation.Address,
			Banking:             observation.Banking,
			Bonus:               observation.Bonus,
			BikeStands:          observation.BikeStands,
			Name:                observation.Name,
			PositionLat:         observation.Position.Lat,
			PositionLng:         observation.Position.Lng,
		}
		if observation.LastUpdate != nil {
			lastUpdate := observation.LastUpdate.UTC().Truncate(time.Microsecond)
			row.LastUpdate = &lastUpdate
		}
		rows = append(rows, row)
	}

	// Same order a later hit on this group reads back.
	slices.SortStableFunc(rows, func(a, b fetched.FetchedBikesData) int {
		return cmp.Compare(a.StationID, b.StationID)
	})

	if err := s.repo.InsertBikes(ctx, rows); err != nil {
		return nil, err
	}
	metrics.CacheRowsPersistedTotal.WithLabelValues("fetched_bikes_data").Add(float64(len(rows)))

	return rows, nil
}
