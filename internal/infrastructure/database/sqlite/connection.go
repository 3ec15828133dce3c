package sqlite

import (
	"fmt"
	"time"

	"remindme/internal/domain/entity"
	"remindme/internal/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open initializes the GORM database connection using SQLite and migrates the
// schema. The caller owns the handle and must release it with Close.
func Open(dsn string, log logger.Logger, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info // Log all SQL
	}
	newLogger := gormlogger.New(
		gormWriter{log: log},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	// One writer at a time; the tick and command handlers share this pool.
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Info(fmt.Sprintf("Connected to database %s, schema migrated.", dsn))
	return db, nil
}

// AutoMigrate automatically migrates the database schema for the defined entities.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.Reminder{},
	)
	if err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

// Close closes the database connection if it's open.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// gormWriter routes GORM's log lines through the application logger.
type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug(fmt.Sprintf(format, args...))
}
