// Package schema opens the relational store and owns its table set.
package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dublinbikes/station-service/config"
	"dublinbikes/station-service/internal/db/fetched"
	"dublinbikes/station-service/internal/db/stations"
)

// Models lists every table of the store in creation order.
func Models() []interface{} {
	return []interface{}{
		&stations.Station{},
		&stations.Availability{},
		&fetched.FetchedWeatherData{},
		&fetched.FetchedBikesData{},
	}
}

func Open(conf *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:  newLogger(),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	switch conf.DBDriver {
	case "sqlite":
		return OpenSQLite(conf.DBPath, gormConfig)
	case "postgres":
		return openPostgres(conf, gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.DBDriver)
	}
}

func openPostgres(conf *config.Config, gormConfig *gorm.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		conf.DBHost, conf.DBPort, conf.DBUser, conf.DBPassword, conf.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	return db, nil
}

// OpenSQLite opens a file database, creating its directory, or a private
// in-memory database for ":memory:".
func OpenSQLite(path string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if gormConfig == nil {
		gormConfig = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	}

	inMemory := path == ":memory:" || strings.Contains(path, "mode=memory")
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; an in-memory database also lives only as long as its connection.
	sqlDB.SetMaxOpenConns(1)
	if !inMemory {
		sqlDB.SetConnMaxIdleTime(time.Minute)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func newLogger() logger.Interface {
	gormLog := log.With().Str("component", "gorm").Logger()
	return logger.New(&gormLog, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
