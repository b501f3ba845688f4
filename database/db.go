package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"

	"github.com/ken-eddy/salesApp/config"
	"github.com/ken-eddy/salesApp/logging"
	"github.com/ken-eddy/salesApp/models"
)

// Connect opens the configured SQL database and migrates the schema.
func Connect(cfg config.Config) (*gorm.DB, error) {
	dialect, dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", dialect, err)
	}
	if cfg.DBDebug {
		db = db.Debug()
	}

	if err := db.AutoMigrate(&models.Supplier{}, &models.Product{}, &models.Stock{}, &models.SalesOrderLine{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logging.Log(logging.Fields{Service: "database", Step: "migrate", Status: "ok", Message: dialect})
	return db, nil
}

// Open returns the Repository selected by cfg.DBDriver.
func Open(cfg config.Config) (Repository, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverPostgres, config.DriverMySQL:
		db, err := Connect(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DBDriver)
	}
}
