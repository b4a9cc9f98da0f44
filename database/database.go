package database

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"chipbook/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() error {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, pass, name, port, sslmode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	DB = db
	slog.Info("connected to database", "host", host, "name", name)

	autoMigrate, err := strconv.ParseBool(os.Getenv("DB_AUTO_MIGRATE"))
	if err != nil {
		autoMigrate = false
	}

	if autoMigrate {
		if err := DB.AutoMigrate(
			&models.User{},
			&models.Game{},
			&models.Record{},
			&models.Debt{},
		); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		slog.Info("auto migration completed")
	}

	return nil
}
