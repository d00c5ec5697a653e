package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"dublinbikes/station-service/config"
	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/db/schema"
	"dublinbikes/station-service/internal/db/stations"
	"dublinbikes/station-service/internal/errs"
	"dublinbikes/station-service/internal/providers"
	"dublinbikes/station-service/internal/sweep"
)

type cli struct {
	conf *config.Config
	db   *gorm.DB
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "cachectl",
		Short:         "Maintenance tasks for the station cache store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.close()
		},
	}

	root.AddCommand(c.migrateCmd(), c.sweepCmd(), c.loadStationsCmd())
	return root
}

func (c *cli) setup() error {
	conf, err := config.LoadConfig()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || conf.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()

	db, err := schema.Open(conf)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	c.conf = conf
	c.db = db
	return nil
}

func (c *cli) close() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the cache tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := schema.Migrate(c.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tables migrated")
			return nil
		},
	}
}

func (c *cli) sweepCmd() *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete cached snapshots requested before today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			location := c.conf.Location()
			sweeper := sweep.NewSweeper(afero.NewOsFs(), fetched.NewRepository(c.db), c.conf.CacheMarkerPath, location, nil)
			return runSweep(cmd.Context(), sweeper, today, location, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "treat this date (YYYY-MM-DD) as today")
	return cmd
}

func (c *cli) loadStationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load-stations",
		Short: "Fetch the station feed once and store static stations and availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider := providers.NewStationsProvider(c.conf, &http.Client{Timeout: c.conf.UpstreamTimeout})
			return loadStations(cmd.Context(), provider, stations.NewRepository(c.db), cmd.OutOrStdout())
		},
	}
}

func runSweep(ctx context.Context, sweeper sweep.Sweeper, today string, location *time.Location, out io.Writer) error {
	var (
		result sweep.Result
		err    error
	)
	if today == "" {
		result, err = sweeper.Sweep(ctx)
	} else {
		day, parseErr := time.ParseInLocation("2006-01-02", today, location)
		if parseErr != nil {
			return errs.With(errs.InvalidInput("--today must be YYYY-MM-DD"), "today", today)
		}
		result, err = sweeper.SweepAt(ctx, day)
	}
	if err != nil {
		return err
	}

	switch {
	case result.Skipped:
		fmt.Fprintf(out, "already swept for %s\n", result.Day)
	case result.Failed:
		fmt.Fprintf(out, "sweep for %s failed, marker advanced\n", result.Day)
	default:
		fmt.Fprintf(out, "swept %s: %d weather rows, %d bikes rows\n", result.Day, result.WeatherDeleted, result.BikesDeleted)
	}
	return nil
}

// loadStations stores one static row and one availability observation per
// station. Stations without an update time get no availability row.
func loadStations(ctx context.Context, provider providers.StationsProvider, repo stations.Repository, out io.Writer) error {
	observations, err := provider.FetchStations(ctx)
	if err != nil {
		return err
	}

	static := make([]stations.Station, 0, len(observations))
	availability := make([]stations.Availability, 0, len(observations))
	seen := make(map[int]struct{}, len(observations))
	for _, observation := range observations {
		if _, dup := seen[observation.Number]; dup {
			continue
		}
		seen[observation.Number] = struct{}{}

		static = append(static, stations.Station{
			StationID:   observation.Number,
			Address:     observation.Address,
			Banking:     observation.Banking,
			Bonus:       observation.Bonus,
			BikeStands:  observation.BikeStands,
			Name:        observation.Name,
			PositionLat: observation.Position.Lat,
			PositionLng: observation.Position.Lng,
		})
		if observation.LastUpdate == nil {
			continue
		}
		availability = append(availability, stations.Availability{
			StationID:           observation.Number,
			LastUpdate:          observation.LastUpdate.UTC().Truncate(time.Microsecond),
			AvailableBikes:      observation.AvailableBikes,
			AvailableBikeStands: observation.AvailableBikeStands,
			Status:              observation.Status,
		})
	}

	if err := repo.UpsertStations(ctx, static); err != nil {
		return err
	}
	inserted, err := repo.InsertAvailability(ctx, availability)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "stored %d stations, %d new availability rows\n", len(static), inserted)
	return nil
}
