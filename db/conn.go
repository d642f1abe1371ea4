// Package db contains things related to SQLite
package db

import (
	"fmt"

	"feedhub/social-api/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Post{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
