package database

import (
	"fmt"
	"sync/atomic"
	"time"

	"geonest/internal/domain"
	"geonest/internal/support"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB *gorm.DB
)

type Config struct {
	ExistingDB  *gorm.DB
	Dialector   gorm.Dialector
	Logger      logger.Interface
	AutoMigrate bool
	Migrations  []any
}

type Option func(*Config)

var currentDSN atomic.Value

func setDSN(dsn string) {
	if dsn == "" {
		return
	}
	currentDSN.Store(dsn)
}

func SetupDB(opts ...Option) (*gorm.DB, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case cfg.ExistingDB != nil:
		DB = cfg.ExistingDB
	case cfg.Dialector != nil:
		if dsn := buildDSN(); dsn != "" {
			setDSN(dsn)
		}
		gormCfg := &gorm.Config{}
		if cfg.Logger != nil {
			gormCfg.Logger = cfg.Logger
		}
		db, err := gorm.Open(cfg.Dialector, gormCfg)
		if err != nil {
			return nil, fmt.Errorf("database: open connection: %w", err)
		}
		DB = db
		configureConnectionPool(db)
	default:
		return nil, fmt.Errorf("database: no dialector or existing connection provided")
	}

	if DB == nil {
		return nil, fmt.Errorf("database: connection was not configured")
	}

	if cfg.AutoMigrate && len(cfg.Migrations) > 0 {
		if err := DB.AutoMigrate(cfg.Migrations...); err != nil {
			return nil, fmt.Errorf("database: auto migrate: %w", err)
		}
		log.Info("Database migration completed.")
	}

	return DB, nil
}

func defaultConfig() Config {
	dsn := buildDSN()

	setDSN(dsn)

	return Config{
		Dialector:   postgres.Open(dsn),
		Logger:      silentLogger(),
		AutoMigrate: true,
		Migrations:  defaultMigrations(),
	}
}

func buildDSN() string {
	dbHost := support.GetEnv("DB_HOST", "localhost")
	dbPort := support.GetEnv("DB_PORT", "5432")
	dbName := support.GetEnv("DB_NAME", "geonest")
	dbUser := support.GetEnv("DB_USERNAME", "admin")
	dbPassword := support.GetEnv("DB_PASSWORD", "admin")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost,
		dbPort,
		dbUser,
		dbPassword,
		dbName,
	)

	return dsn
}

func silentLogger() logger.Interface {
	return logger.New(
		log.Default(),
		logger.Config{LogLevel: logger.Silent},
	)
}

func defaultMigrations() []any {
	return []any{
		domain.User{},
		domain.Geofeed{},
		domain.IPRange{},
		domain.ActivityLog{},
	}
}

func WithExistingDB(db *gorm.DB) Option {
	return func(cfg *Config) {
		cfg.ExistingDB = db
	}
}

func WithDialector(d gorm.Dialector) Option {
	return func(cfg *Config) {
		cfg.Dialector = d
	}
}

func WithLogger(l logger.Interface) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

func WithAutoMigrate(enabled bool) Option {
	return func(cfg *Config) {
		cfg.AutoMigrate = enabled
	}
}

func WithMigrations(models ...any) Option {
	return func(cfg *Config) {
		if len(models) == 0 {
			cfg.Migrations = nil
			return
		}
		cfg.Migrations = append([]any(nil), models...)
	}
}

func configureConnectionPool(db *gorm.DB) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Error("database: get sql.DB", "error", err)
		return
	}

	maxOpen := support.GetEnvInt("DB_MAX_OPEN_CONNS", 32)
	maxIdle := support.GetEnvInt("DB_MAX_IDLE_CONNS", maxOpen)
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}

	connLifetimeSeconds := support.GetEnvInt("DB_CONN_MAX_LIFETIME", 300)
	connIdleSeconds := support.GetEnvInt("DB_CONN_MAX_IDLE_TIME", 60)

	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if connLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(connLifetimeSeconds) * time.Second)
	}
	if connIdleSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(connIdleSeconds) * time.Second)
	}
}

func transactionRollbackHandler(tx *gorm.DB) {
	if r := recover(); r != nil {
		tx.Rollback()
		log.Errorf("Transaction rolled back due to panic: %v", r)
	}
}

func getNumDatabaseFields(model interface{}, db *gorm.DB) (int, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return 0, err
	}
	return len(stmt.Schema.DBNames), nil
}
