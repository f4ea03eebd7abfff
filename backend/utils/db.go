package utils

import (
	"time"

	"learngenie/backend/config"
	"learngenie/backend/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the postgres connection and migrates the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := repository.Migrate(db); err != nil {
		return nil, err
	}
	log.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("database connected")

	return db, nil
}

// InitStore returns the store selected by DB_DRIVER.
func InitStore(cfg *config.Config) (*repository.Store, error) {
	if cfg.DBDriver == config.DriverMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), nil
	}
	db, err := InitDB(cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}
