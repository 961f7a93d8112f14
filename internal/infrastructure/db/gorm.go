package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"propledger-backend/internal/domain/document"
	"propledger-backend/internal/domain/invoice"
	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/payment"
	"propledger-backend/internal/domain/property"
	"propledger-backend/internal/domain/purchase"
	"propledger-backend/internal/domain/repayment"
	"propledger-backend/internal/domain/source"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
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
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates or updates the full ledger schema. Parent tables go
// first so the FK columns have something to point at.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&property.Property{},
		&purchase.Purchase{},
		&loan.Loan{},
		&source.Source{},
		&repayment.Repayment{},
		&invoice.Invoice{},
		&payment.Payment{},
		&document.Document{},
	)
}
