package main

import (
	"auction_house/internal/config" // Custom import path (Config)
	"auction_house/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	db.Migrate(cfg.DSN()) // Run schema migration and category seeding
}
