package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoDatabase means DATABASE_URL is unset. The service runs without
// persistence in that case.
var ErrNoDatabase = errors.New("DATABASE_URL is empty")

var DB *gorm.DB

// Connect opens the Postgres connection named by DATABASE_URL and stores it
// in DB.
func Connect() error {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		return ErrNoDatabase
	}

	d, err := Open(dsn)
	if err != nil {
		return err
	}

	DB = d
	log.Println("Connected to database")
	return nil
}

// Open connects to dsn with the service's logger and pool settings.
func Open(dsn string) (*gorm.DB, error) {
	// Surface slow queries; routine SQL stays quiet.
	lg := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	d, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: lg,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return d, nil
}
