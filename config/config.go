package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName   string
	ServerAddress string

	DBDriver   string
	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string
	DBPath     string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	JCDecauxAPIKey      string
	JCDecauxContract    string
	JCDecauxStationsURL string

	OpenWeatherAPIKey      string
	OpenWeatherLocation    string
	OpenWeatherCurrentURL  string
	OpenWeatherForecastURL string

	UpstreamTimeout     time.Duration
	BreakerMaxRequests  uint32
	BreakerInterval     time.Duration
	BreakerTimeout      time.Duration
	BreakerFailureLimit uint32

	BikesCacheTTL           time.Duration
	CurrentWeatherCacheTTL  time.Duration
	ForecastCacheTTL        time.Duration
	ForecastSearchTolerance time.Duration
	ForecastMatchTolerance  time.Duration

	CacheMarkerPath string
	CacheTimezone   string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "dublinbikes-station-service")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_PATH", "data/db.sqlite3")
	v.SetDefault("HTTP_TIMEOUT", 30)

	v.SetDefault("JCDECAUX_CONTRACT", "dublin")
	v.SetDefault("JCDECAUX_STATIONS_URL", "https://api.jcdecaux.com/vls/v1/stations")

	v.SetDefault("OPENWEATHER_LOCATION", "Dublin,IE")
	v.SetDefault("OPENWEATHER_CURRENT_URL", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("OPENWEATHER_FORECAST_URL", "https://api.openweathermap.org/data/2.5/forecast")

	v.SetDefault("UPSTREAM_TIMEOUT", 10*time.Second)
	v.SetDefault("BREAKER_MAX_REQUESTS", 1)
	v.SetDefault("BREAKER_INTERVAL", time.Minute)
	v.SetDefault("BREAKER_TIMEOUT", 30*time.Second)
	v.SetDefault("BREAKER_FAILURE_LIMIT", 5)

	v.SetDefault("BIKES_CACHE_TTL", 5*time.Minute)
	v.SetDefault("CURRENT_WEATHER_CACHE_TTL", 15*time.Minute)
	v.SetDefault("FORECAST_CACHE_TTL", time.Hour)
	v.SetDefault("FORECAST_SEARCH_TOLERANCE", 3*time.Hour)
	v.SetDefault("FORECAST_MATCH_TOLERANCE", 91*time.Minute)

	v.SetDefault("CACHE_MARKER_PATH", "data/lastcachedelete.txt")
	v.SetDefault("CACHE_TIMEZONE", "Europe/Dublin")

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:   v.GetString("SERVICE_NAME"),
		ServerAddress: v.GetString("SERVER_ADDRESS"),
		DBDriver:      v.GetString("DATABASE_DRIVER"),
		DBName:        v.GetString("DATABASE_NAME"),
		DBPassword:    v.GetString("DATABASE_PASSWORD"),
		DBUser:        v.GetString("DATABASE_USER"),
		DBPort:        v.GetString("DATABASE_PORT"),
		DBHost:        v.GetString("DATABASE_HOST"),
		DBPath:        v.GetString("DATABASE_PATH"),
		Env:           v.GetString("ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		HTTPTimeout:   v.GetInt32("HTTP_TIMEOUT"),

		JCDecauxAPIKey:      v.GetString("JCDECAUX_API_KEY"),
		JCDecauxContract:    v.GetString("JCDECAUX_CONTRACT"),
		JCDecauxStationsURL: v.GetString("JCDECAUX_STATIONS_URL"),

		OpenWeatherAPIKey:      v.GetString("OPENWEATHER_API_KEY"),
		OpenWeatherLocation:    v.GetString("OPENWEATHER_LOCATION"),
		OpenWeatherCurrentURL:  v.GetString("OPENWEATHER_CURRENT_URL"),
		OpenWeatherForecastURL: v.GetString("OPENWEATHER_FORECAST_URL"),

		UpstreamTimeout:     v.GetDuration("UPSTREAM_TIMEOUT"),
		BreakerMaxRequests:  v.GetUint32("BREAKER_MAX_REQUESTS"),
		BreakerInterval:     v.GetDuration("BREAKER_INTERVAL"),
		BreakerTimeout:      v.GetDuration("BREAKER_TIMEOUT"),
		BreakerFailureLimit: v.GetUint32("BREAKER_FAILURE_LIMIT"),

		BikesCacheTTL:           v.GetDuration("BIKES_CACHE_TTL"),
		CurrentWeatherCacheTTL:  v.GetDuration("CURRENT_WEATHER_CACHE_TTL"),
		ForecastCacheTTL:        v.GetDuration("FORECAST_CACHE_TTL"),
		ForecastSearchTolerance: v.GetDuration("FORECAST_SEARCH_TOLERANCE"),
		ForecastMatchTolerance:  v.GetDuration("FORECAST_MATCH_TOLERANCE"),

		CacheMarkerPath: v.GetString("CACHE_MARKER_PATH"),
		CacheTimezone:   v.GetString("CACHE_TIMEZONE"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DBDriver)
	}

	if c.ForecastMatchTolerance > c.ForecastSearchTolerance {
		return fmt.Errorf("FORECAST_MATCH_TOLERANCE (%s) must not exceed FORECAST_SEARCH_TOLERANCE (%s)",
			c.ForecastMatchTolerance, c.ForecastSearchTolerance)
	}

	if _, err := time.LoadLocation(c.CacheTimezone); err != nil {
		return fmt.Errorf("invalid CACHE_TIMEZONE: %w", err)
	}

	return nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// Location returns the zone used to decide where a cache day starts and to
// read wall-clock forecast targets. Falls back to UTC for an unset zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.CacheTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
