package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
)

// Connect opens the Postgres pool described by cfg and returns it. The handle
// is passed down to controllers and engines explicitly; there is no package
// level connection.
func Connect(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // required behind PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// TunePool sizes the underlying sql.DB pool for the managed Postgres limits.
func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[DB] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUp pings the pool shortly after startup so the first real request does
// not pay the connection cost.
func WarmUp(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		sqlDB, err := db.DB()
		if err != nil {
			log.Printf("[DB] warm-up err: %v", err)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			log.Printf("[DB] warm-up ping err: %v", err)
		}
	}()
}
