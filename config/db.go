package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"hotel-paradiso/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// GormConfig is shared by the server and by tests that open gorm over a
// stub connection.
func GormConfig(level string) *gorm.Config {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormLogLevel(level),
			Colorful:      true,
		},
	)
	return &gorm.Config{
		Logger: newLogger,
		// every write path that needs atomicity opens its own transaction
		SkipDefaultTransaction: true,
	}
}

// ConnectDatabase opens the pool and pings it. The caller owns the handle
// and must close it.
func ConnectDatabase(ctx context.Context, cfg DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), GormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("raw sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.PoolSize)
	sqlDB.SetMaxIdleConns(cfg.PoolSize)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	log.Printf("✅ MariaDB/MySQL connected (db=%s, pool=%d)", cfg.Name, cfg.PoolSize)
	return db, nil
}

// EnsureSchema creates the tables and indexes when absent. Safe on every start.
func EnsureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Reservation{},
		&models.PaymentEvent{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	log.Println(`✅ Tables "reservations" and "payment_events" verified/created.`)
	return nil
}

// CloseDatabase releases the pool.
func CloseDatabase(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("info: cannot get raw sql.DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("warning: closing database: %v", err)
	}
}
