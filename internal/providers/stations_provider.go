package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"dublinbikes/station-service/config"
	"dublinbikes/station-service/internal/errs"
)

const jcdecauxProvider = "jcdecaux"

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StationObservation is one station of the JCDecaux feed.
type StationObservation struct {
	Number              int
	Name                string
	Address             string
	Position            Position
	Banking             bool
	Bonus               bool
	BikeStands          int
	AvailableBikeStands int
	AvailableBikes      int
	Status              string
	LastUpdate          *time.Time
}

type StationsProvider interface {
	FetchStations(ctx context.Context) ([]StationObservation, error)
}

type jcdecauxStationsProvider struct {
	upstream *upstream
	apiKey   string
	contract string
	endpoint string
}

// NewStationsProvider builds the JCDecaux client. A nil client gets one bounded by UpstreamTimeout.
func NewStationsProvider(conf *config.Config, client *http.Client) StationsProvider {
	return &jcdecauxStationsProvider{
		upstream: newUpstream(jcdecauxProvider, conf, client),
		apiKey:   conf.JCDecauxAPIKey,
		contract: conf.JCDecauxContract,
		endpoint: conf.JCDecauxStationsURL,
	}
}

type jcdecauxStation struct {
	Number              *int     `json:"number"`
	ContractName        string   `json:"contract_name"`
	Name                string   `json:"name"`
	Address             string   `json:"address"`
	Position            Position `json:"position"`
	Banking             bool     `json:"banking"`
	Bonus               bool     `json:"bonus"`
	BikeStands          int      `json:"bike_stands"`
	AvailableBikeStands int      `json:"available_bike_stands"`
	AvailableBikes      int      `json:"available_bikes"`
	Status              string   `json:"status"`
	LastUpdate          *int64   `json:"last_update"`
}

func (p *jcdecauxStationsProvider) FetchStations(ctx context.Context) ([]StationObservation, error) {
	query := url.Values{}
	query.Set("contract", p.contract)
	query.Set("apiKey", p.apiKey)

	body, err := p.upstream.get(ctx, p.endpoint, query)
	if err != nil {
		return nil, err
	}

	var payload []jcdecauxStation
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.With(errs.Parse(err, "jcdecaux returned malformed JSON"), "provider", jcdecauxProvider)
	}

	observations := make([]StationObservation, 0, len(payload))
	for i, station := range payload {
		if station.Number == nil {
			log.Warn().Int("index", i).Msg("Skipping jcdecaux station without a number")
			continue
		}

		observation := StationObservation{
			Number:              *station.Number,
			Name:                station.Name,
			Address:             station.Address,
			Position:            station.Position,
			Banking:             station.Banking,
			Bonus:               station.Bonus,
			BikeStands:          station.BikeStands,
			AvailableBikeStands: station.AvailableBikeStands,
			AvailableBikes:      station.AvailableBikes,
			Status:              station.Status,
		}
		if station.LastUpdate != nil && *station.LastUpdate > 0 {
			lastUpdate := time.UnixMilli(*station.LastUpdate).UTC()
			observation.LastUpdate = &lastUpdate
		}

		observations = append(observations, observation)
	}

	return observations, nil
}
