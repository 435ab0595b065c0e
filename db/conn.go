// Package db opens the database connection and keeps the schema current
package db

import (
	"errors"
	"fmt"

	"skystore/storefront-api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the configured database (sqlite or postgres) and migrates
// the schema. TranslateError is enabled so unique-constraint violations
// surface as gorm.ErrDuplicatedKey regardless of driver, which the
// registration flow relies on
func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver := viper.GetString("db.driver"); driver {
	case "sqlite":
		dialector = sqlite.Open(viper.GetString("db.dsn"))
	case "postgres":
		dialector = postgres.Open(viper.GetString("db.dsn"))
	default:
		return nil, errors.New("unsupported db driver " + driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(
		model.User{},
		model.ResendRequest{},
		model.Category{},
		model.Product{},
		model.Version{},
		model.Article{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
