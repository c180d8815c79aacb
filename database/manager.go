package database

import (
	"fmt"

	"github.com/KOMKZ/property-catalog/logger"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database connection described by cfg and configures
// the connection pool.
// log: business logger (must not be nil)
func Connect(cfg Config, log *logger.CtxZapLogger) (*gorm.DB, error) {
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{
		Logger: gormLoggerFor(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Debug("database connection successful",
		zap.String("driver", cfg.Driver))

	return db, nil
}

// openDialector selects the gorm driver by config
func openDialector(cfg Config) gorm.Dialector {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN)
	case "sqlite":
		return sqlite.Open(cfg.DSN)
	default:
		return mysql.Open(cfg.DSN)
	}
}

// gormLoggerFor builds the GORM logger from config
func gormLoggerFor(cfg Config) gormlogger.Interface {
	if !cfg.EnableLog {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return logger.NewGormLogger(logger.GormLoggerConfig{
		SlowThreshold: cfg.SlowThreshold,
		LogLevel:      gormlogger.Info,
	})
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
