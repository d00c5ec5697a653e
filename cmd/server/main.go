package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"dublinbikes/station-service/config"
	"dublinbikes/station-service/internal/api/v1/handlers"
	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/db/schema"
	"dublinbikes/station-service/internal/db/stations"
	"dublinbikes/station-service/internal/providers"
	"dublinbikes/station-service/internal/service"
	"dublinbikes/station-service/internal/sweep"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || conf.LogLevel == "" {
		logLevel = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()

	ctx, mainCtxStop := context.WithCancel(context.Background())

	db, err := schema.Open(conf)
	if err != nil {
		log.Fatal().Err(err).Str("driver", conf.DBDriver).Msg("failed to initialize database")
	}
	if err := schema.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to access connection pool")
	}

	fetchedRepo := fetched.NewRepository(db)
	stationRepo := stations.NewRepository(db)

	upstreamClient := &http.Client{Timeout: conf.UpstreamTimeout}
	stationsProvider := providers.NewStationsProvider(conf, upstreamClient)
	weatherProvider := providers.NewWeatherProvider(conf, upstreamClient)

	location := conf.Location()
	sweeper := sweep.NewSweeper(afero.NewOsFs(), fetchedRepo, conf.CacheMarkerPath, location, nil)

	cacheService := service.NewCacheService(
		fetchedRepo,
		stationsProvider,
		weatherProvider,
		sweeper,
		service.OptionsFromConfig(conf),
	)

	timeout := conf.HTTPTimeoutDuration()
	router := handlers.NewRouter(handlers.RouterConfig{
		Bikes:    handlers.NewBikesHandler(cacheService, timeout),
		Weather:  handlers.NewWeatherHandler(cacheService, location, timeout),
		Stations: handlers.NewStationsHandler(stationRepo, location, timeout),
		Ping:     sqlDB.PingContext,
	})

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: timeout,
	}

	handleSignals(ctx, mainCtxStop, func() {
		shutdownErr := httpServer.Shutdown(ctx)
		if shutdownErr != nil {
			log.Fatal().Err(shutdownErr).Msg("server shutdown failed")
		}
		if closeErr := sqlDB.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close database")
		}
	})

	log.Info().
		Str("driver", conf.DBDriver).
		Str("timezone", location.String()).
		Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil && serverErr != http.ErrServerClosed {
		log.Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func()) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback()

		cancel()
		cancelCtx()
	}()
}
