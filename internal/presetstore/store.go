package presetstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/decker502/fireworks/pkg/types"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrInvalidCollection is returned for empty collection names.
var ErrInvalidCollection = errors.New("invalid collection name")

// RocketRecord is one stored rocket preset.
type RocketRecord struct {
	ID            uint    `gorm:"primaryKey"`
	Collection    string  `gorm:"index;not null"`
	Color         string  `gorm:"not null"`
	Size          float64 `gorm:"not null"`
	ParticleCount int     `gorm:"not null"`
	CreatedAt     time.Time
}

// Rocket converts the record to the shared preset type.
func (r RocketRecord) Rocket() types.Rocket {
	return types.Rocket{Color: r.Color, Size: r.Size, ParticleCount: r.ParticleCount}
}

// Store persists rocket presets grouped by collection.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

var gormConfig = &gorm.Config{
	SkipDefaultTransaction: true,
	Logger:                 logger.Default.LogMode(logger.Silent),
}

// OpenStore connects to the configured backend and migrates the schema.
func OpenStore(cfg StorageConfig, log zerolog.Logger) (*Store, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres:
		log.Debug().Str("host", cfg.DB.Host).Str("database", cfg.DB.Database).Msg("Connecting to Postgres")
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DB.DSN(),
			PreferSimpleProtocol: true,
		}), gormConfig)
	case DriverSQLite:
		path := cfg.SQLite.Path
		if path == "" {
			path = "file::memory:?cache=shared"
			log.Info().Msg("Using in-memory SQLite DB")
		} else {
			log.Info().Str("path", path).Msg("Using local SQLite DB")
		}
		db, err = gorm.Open(sqlite.Open(path), gormConfig)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	if err := db.AutoMigrate(&RocketRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info().Str("driver", cfg.Driver).Msg("Preset store ready")

	return &Store{db: db, logger: log}, nil
}

// Insert validates and stores rocket in collection, returning the new record.
func (s *Store) Insert(ctx context.Context, collection string, rocket types.Rocket) (RocketRecord, error) {
	if collection == "" {
		return RocketRecord{}, ErrInvalidCollection
	}
	if err := rocket.Validate(); err != nil {
		return RocketRecord{}, err
	}

	record := RocketRecord{
		Collection:    collection,
		Color:         rocket.Color,
		Size:          rocket.Size,
		ParticleCount: rocket.ParticleCount,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return RocketRecord{}, fmt.Errorf("insert rocket: %w", err)
	}
	s.logger.Debug().Uint("id", record.ID).Str("collection", collection).Msg("Inserted rocket")
	return record, nil
}

// Find returns every record in collection in insertion order.
func (s *Store) Find(ctx context.Context, collection string) ([]RocketRecord, error) {
	if collection == "" {
		return nil, ErrInvalidCollection
	}
	var records []RocketRecord
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("find rockets: %w", err)
	}
	return records, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}
