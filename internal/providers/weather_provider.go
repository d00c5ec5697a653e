package providers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"dublinbikes/station-service/config"
	"dublinbikes/station-service/internal/errs"
	"dublinbikes/station-service/internal/metrics"
)

const openWeatherProvider = "openweather"

// WeatherObservation is one current reading or one forecast bucket. Rain and
// Snow hold the 1h volume for current readings and the 3h volume for forecasts.
type WeatherObservation struct {
	Time      time.Time
	FeelsLike *float64
	Humidity  *int
	Pressure  *int
	Sunrise   *time.Time
	Sunset    *time.Time
	Temp      *float64
	UVI       *float64
	Icon      string
	WindGust  *float64
	WindSpeed *float64
	Rain      *float64
	Snow      *float64
}

type WeatherProvider interface {
	FetchCurrentWeather(ctx context.Context) (WeatherObservation, error)
	FetchForecastWeather(ctx context.Context) ([]WeatherObservation, error)
}

type openWeatherProviderService struct {
	upstream    *upstream
	apiKey      string
	location    string
	currentURL  string
	forecastURL string
}

func NewWeatherProvider(conf *config.Config, client *http.Client) WeatherProvider {
	return &openWeatherProviderService{
		upstream:    newUpstream(openWeatherProvider, conf, client),
		apiKey:      conf.OpenWeatherAPIKey,
		location:    conf.OpenWeatherLocation,
		currentURL:  conf.OpenWeatherCurrentURL,
		forecastURL: conf.OpenWeatherForecastURL,
	}
}

type openWeatherMain struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	Pressure  *float64 `json:"pressure"`
	Humidity  *float64 `json:"humidity"`
}

type openWeatherWind struct {
	Speed *float64 `json:"speed"`
	Gust  *float64 `json:"gust"`
}

type openWeatherVolume struct {
	OneHour   *float64 `json:"1h"`
	ThreeHour *float64 `json:"3h"`
}

type openWeatherCondition struct {
	ID   int    `json:"id"`
	Main string `json:"main"`
	Icon string `json:"icon"`
}

type openWeatherEntry struct {
	Dt      int64                  `json:"dt"`
	Main    openWeatherMain        `json:"main"`
	Wind    openWeatherWind        `json:"wind"`
	Rain    *openWeatherVolume     `json:"rain"`
	Snow    *openWeatherVolume     `json:"snow"`
	Weather []openWeatherCondition `json:"weather"`
	Sys     struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

type openWeatherForecastResponse struct {
	List []json.RawMessage `json:"list"`
}

func (p *openWeatherProviderService) query() url.Values {
	query := url.Values{}
	query.Set("q", p.location)
	query.Set("units", "metric")
	query.Set("lang", "en")
	query.Set("appid", p.apiKey)
	return query
}

func (p *openWeatherProviderService) FetchCurrentWeather(ctx context.Context) (WeatherObservation, error) {
	body, err := p.upstream.get(ctx, p.currentURL, p.query())
	if err != nil {
		return WeatherObservation{}, err
	}

	var entry openWeatherEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return WeatherObservation{}, errs.With(errs.Parse(err, "openweather returned malformed JSON"), "provider", openWeatherProvider)
	}
	if entry.Dt <= 0 {
		return WeatherObservation{}, errs.With(errs.Parse(nil, "openweather current weather has no observation time"), "provider", openWeatherProvider)
	}
	if entry.Sys.Sunrise <= 0 || entry.Sys.Sunset <= 0 {
		return WeatherObservation{}, errs.With(errs.Parse(nil, "openweather current weather has no sunrise or sunset"), "provider", openWeatherProvider)
	}

	observation := entry.observation()
	sunrise := time.Unix(entry.Sys.Sunrise, 0).UTC()
	sunset := time.Unix(entry.Sys.Sunset, 0).UTC()
	observation.Sunrise = &sunrise
	observation.Sunset = &sunset
	if entry.Rain != nil {
		observation.Rain = entry.Rain.OneHour
	}
	if entry.Snow != nil {
		observation.Snow = entry.Snow.OneHour
	}

	return observation, nil
}

// FetchForecastWeather returns every decodable forecast bucket in upstream order.
// Malformed buckets are skipped; a payload where none decode is a parse error.
func (p *openWeatherProviderService) FetchForecastWeather(ctx context.Context) ([]WeatherObservation, error) {
	body, err := p.upstream.get(ctx, p.forecastURL, p.query())
	if err != nil {
		return nil, err
	}

	var response openWeatherForecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errs.With(errs.Parse(err, "openweather returned malformed JSON"), "provider", openWeatherProvider)
	}

	observations := make([]WeatherObservation, 0, len(response.List))
	for i, raw := range response.List {
		var entry openWeatherEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Dt <= 0 {
			metrics.UpstreamMalformedEntriesTotal.WithLabelValues(openWeatherProvider).Inc()
			log.Warn().Err(err).Int("index", i).Msg("Skipping malformed forecast entry")
			continue
		}

		observation := entry.observation()
		if entry.Rain != nil {
			observation.Rain = entry.Rain.ThreeHour
		}
		if entry.Snow != nil {
			observation.Snow = entry.Snow.ThreeHour
		}
		observations = append(observations, observation)
	}

	if len(response.List) > 0 && len(observations) == 0 {
		return nil, errs.With(errs.Parse(nil, "openweather forecast has no usable entries"), "provider", openWeatherProvider)
	}

	return observations, nil
}

func (e openWeatherEntry) observation() WeatherObservation {
	observation := WeatherObservation{
		Time:      time.Unix(e.Dt, 0).UTC(),
		FeelsLike: e.Main.FeelsLike,
		Humidity:  roundedInt(e.Main.Humidity),
		Pressure:  roundedInt(e.Main.Pressure),
		Temp:      e.Main.Temp,
		WindGust:  e.Wind.Gust,
		WindSpeed: e.Wind.Speed,
	}
	if len(e.Weather) > 0 {
		observation.Icon = e.Weather[0].Icon
	}
	return observation
}

func roundedInt(value *float64) *int {
	if value == nil {
		return nil
	}
	rounded := int(math.Round(*value))
	return &rounded
}
