package db

import (
	"fmt"
	"log"
	"strings"
	"time"

	"loan-service/internal/config"
	"loan-service/internal/domain/loan"
	"loan-service/internal/domain/loantype"
	"loan-service/internal/domain/payment"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.PostgresDSN()), nil
	}
	return nil, fmt.Errorf("db: unsupported driver %q", cfg.DBDriver)
}

func Open(cfg *config.Config) (*gorm.DB, error) {
	dial, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return OpenGormWithDialector(dial, WithLogLevel(cfg.DBLogLevel))
}

type Option func(*gorm.Config)

func WithLogLevel(level string) Option {
	return func(c *gorm.Config) { c.Logger = logger.Default.LogMode(ParseLogLevel(level)) }
}

func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// pinged explicitly below, after pool tuning
		DisableAutomaticPing: true,
	}
	for _, o := range opts {
		o(cfg)
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Printf("gorm: connected (%s)", dial.Name())
	return db, nil
}

// Migrate creates or updates the loans, payments and loan_types tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&loan.Loan{}, &payment.Payment{}, &loantype.LoanType{}); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
