package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ricardomonteiro/vitrine-backend/internal/config"
	"github.com/ricardomonteiro/vitrine-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres connection and returns the handle. Connection
// lifecycle is owned by the caller (closed on process shutdown).
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return db, nil
}

// Migrate runs AutoMigrate for all marketplace models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Access{},
		&models.UserAccess{},
		&models.Store{},
		&models.Product{},
		&models.ProductImage{},
		&models.Address{},
		&models.Sale{},
		&models.SaleProduct{},
		&models.PasswordResetToken{},
		&models.CheckoutIntent{},
		&models.SystemLog{},
	)
}

// SeedAccesses creates the default permission tiers when missing.
func SeedAccesses(db *gorm.DB) error {
	for _, name := range []string{"admin", "seller", "buyer"} {
		var access models.Access
		err := db.Where("name = ?", name).First(&access).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&models.Access{ID: uuid.New(), Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed access %q: %w", name, err)
		}
	}
	return nil
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
