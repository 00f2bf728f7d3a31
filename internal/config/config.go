package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/models"
)

type Config struct {
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	JWT_SECRET    string
	KAFKA_ADDRESS string
	PORT          string
	CORS_ORIGIN   string
	UPLOAD_DIR    string
	LOG_LEVEL     string
	SESSION_DAYS  int
	TOKEN_DAYS    int
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:       getenv("DB_HOST", "localhost"),
		DB_PORT:       getenv("DB_PORT", "5432"),
		DB_USER:       getenv("DB_USER", "postgres"),
		DB_PASSWORD:   getenv("DB_PASSWORD", "postgres"),
		DB_NAME:       getenv("DB_NAME", "medstore"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		JWT_SECRET:    getenv("JWT_SECRET", "dev_secret"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		PORT:          getenv("PORT", "3000"),
		CORS_ORIGIN:   getenv("CORS_ORIGIN", "http://localhost:5173"),
		UPLOAD_DIR:    getenv("UPLOAD_DIR", "public/uploads"),
		LOG_LEVEL:     getenv("LOG_LEVEL", "info"),
		SESSION_DAYS:  getenvInt("SESSION_DAYS", 30),
		TOKEN_DAYS:    getenvInt("TOKEN_DAYS", 30),
	}

	if config.JWT_SECRET == "dev_secret" {
		log.Printf("Warning: JWT_SECRET not set, using development fallback")
	}

	return config, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Product{},
		&models.Service{},
		&models.News{},
		&models.Order{},
		&models.Appointment{},
		&models.Review{},
		&models.Favorite{},
		&models.ServiceOffice{},
		&models.KenyaCounty{},
		&models.KenyaSubCounty{},
		&models.KenyaArea{},
		&models.NewsletterSubscriber{},
		&models.SiteSettings{},
		&models.EmailChangeRequest{},
	)
}
