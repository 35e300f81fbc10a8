package db

import (
	"auction_house/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// defaultCategories seed the categories table on first migration; categories
// are otherwise created through the admin endpoint
var defaultCategories = []string{
	"Antiques",
	"Books",
	"Clothing",
	"Electronics",
	"Home & Garden",
	"Sporting Goods",
	"Toys & Hobbies",
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Listing{},
		&domain.Bid{},
		&domain.Comment{},
		&domain.WatchlistEntry{},
	)
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	seedCategories(db)
	logrus.Info("Migration completed.") // Log successful migration
}

// seedCategories inserts the default category set when the table is empty
func seedCategories(db *gorm.DB) {
	var count int64
	if err := db.Model(&domain.Category{}).Count(&count).Error; err != nil {
		logrus.Fatalf("failed to count categories: %v", err)
	}
	if count > 0 {
		return
	}
	for _, title := range defaultCategories {
		if err := db.Create(&domain.Category{Title: title}).Error; err != nil {
			logrus.Fatalf("failed to seed category %q: %v", title, err)
		}
	}
	logrus.Infof("Seeded %d default categories.", len(defaultCategories))
}
