package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mkartashov/currency-rates-service/internal/config"
)

func MustInitDB(cfg *config.CurrencyConfig) *gorm.DB {
	dsn := cfg.CurrencyDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	return db
}
