package database

import (
	"fmt"
	"log"

	"homework-bot/internal/models/config"

	"github.com/jmoiron/sqlx"
)

func NewPostgres() (*sqlx.DB, error) {
	cfg := config.AppConfig.Database

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Printf("🗄️  Подключено к PostgreSQL: %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}
