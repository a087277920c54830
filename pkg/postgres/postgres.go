package postgres

import (
	"fmt"
	"net/url"

	"algooee/config"
	"algooee/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the prediction history connection. A DB opened from a config
// without a host is disabled: Gorm returns nil and Close is a no-op, so
// callers fall back to not persisting history.
type DB struct {
	gorm *gorm.DB
	log  *logger.Logger
}

// NewDB opens the prediction history database, or returns a disabled
// handle when database.host is empty.
func NewDB(cfg config.Database, log *logger.Logger) (*DB, error) {
	if !cfg.Enabled() {
		log.Info("Database host not set, prediction history disabled")
		return &DB{log: log}, nil
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open prediction history database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	log.Info("Connected to prediction history database",
		logger.StringField("host", cfg.Host),
		logger.StringField("database", cfg.DBName),
	)
	return &DB{gorm: db, log: log}, nil
}

func (d *DB) Enabled() bool {
	return d != nil && d.gorm != nil
}

// Gorm returns nil when the handle is disabled.
func (d *DB) Gorm() *gorm.DB {
	if !d.Enabled() {
		return nil
	}
	return d.gorm
}

func (d *DB) Close() error {
	if !d.Enabled() {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB for closing: %w", err)
	}
	d.log.Info("Closing prediction history database")
	return sqlDB.Close()
}

// DSN is the keyword/value connection string used by gorm.
func DSN(cfg config.Database) string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)
	if cfg.TimeZone != "" {
		dsn += " TimeZone=" + cfg.TimeZone
	}
	return dsn
}

// MigrationURL is the postgres:// URL golang-migrate expects.
func MigrationURL(cfg config.Database) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "Silent":
		return gormlogger.Silent
	case "Error":
		return gormlogger.Error
	case "Info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
