// Package sweep evicts cached snapshots older than the current day, at most
// once per day, tracking the last run in a marker file.
package sweep

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/metrics"
)

const dayLayout = "2006-01-02"

// Purger deletes every cached row requested before cutoff.
type Purger interface {
	PurgeRequestedBefore(ctx context.Context, cutoff time.Time) (fetched.PurgeResult, error)
}

type Result struct {
	Skipped        bool
	Day            string
	WeatherDeleted int64
	BikesDeleted   int64
	// Failed reports a delete that did not go through. The marker is advanced regardless.
	Failed bool
}

type Sweeper interface {
	Sweep(ctx context.Context) (Result, error)
	SweepAt(ctx context.Context, today time.Time) (Result, error)
}

type cacheSweeper struct {
	mu         sync.Mutex
	fs         afero.Fs
	markerPath string
	purger     Purger
	location   *time.Location
	now        func() time.Time
}

// NewSweeper builds a Sweeper whose day boundaries are taken in location.
// A nil now uses the wall clock.
func NewSweeper(fs afero.Fs, purger Purger, markerPath string, location *time.Location, now func() time.Time) Sweeper {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &cacheSweeper{
		fs:         fs,
		markerPath: markerPath,
		purger:     purger,
		location:   location,
		now:        now,
	}
}

func (s *cacheSweeper) Sweep(ctx context.Context) (Result, error) {
	return s.SweepAt(ctx, s.now())
}

func (s *cacheSweeper) SweepAt(ctx context.Context, today time.Time) (Result, error) {
	local := today.In(s.location)
	day := local.Format(dayLayout)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)

	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.readMarker()
	if err != nil {
		return Result{}, err
	}
	if last == day {
		metrics.SweepRunsTotal.WithLabelValues("skipped").Inc()
		log.Debug().Str("day", day).Msg("Cache already swept today")
		return Result{Skipped: true, Day: day}, nil
	}

	result := Result{Day: day}
	purged, err := s.purger.PurgeRequestedBefore(ctx, midnight)
	if err != nil {
		result.Failed = true
		metrics.SweepRunsTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("day", day).Msg("Cache sweep failed to delete old snapshots")
	} else {
		result.WeatherDeleted = purged.WeatherDeleted
		result.BikesDeleted = purged.BikesDeleted
		metrics.SweepRunsTotal.WithLabelValues("completed").Inc()
		metrics.SweepDeletedRowsTotal.WithLabelValues("fetched_weather_data").Add(float64(purged.WeatherDeleted))
		metrics.SweepDeletedRowsTotal.WithLabelValues("fetched_bikes_data").Add(float64(purged.BikesDeleted))
		log.Info().
			Str("day", day).
			Int64("weather_deleted", purged.WeatherDeleted).
			Int64("bikes_deleted", purged.BikesDeleted).
			Msg("Cache swept")
	}

	if err := s.writeMarker(day); err != nil {
		return result, err
	}

	return result, nil
}

func (s *cacheSweeper) readMarker() (string, error) {
	content, err := afero.ReadFile(s.fs, s.markerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read sweep marker: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

// writeMarker replaces the marker through a rename so readers never see a partial date.
func (s *cacheSweeper) writeMarker(day string) error {
	if dir := filepath.Dir(s.markerPath); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create sweep marker directory: %w", err)
		}
	}

	tmp := s.markerPath + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(day+"\n"), 0o644); err != nil {
		return fmt.Errorf("write sweep marker: %w", err)
	}
	if err := s.fs.Rename(tmp, s.markerPath); err != nil {
		return fmt.Errorf("replace sweep marker: %w", err)
	}
	return nil
}
