package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	ServerPort     string
	Environment    string
	MigrationsPath string
	SessionTTL     time.Duration
	UploadDir      string

	// Optional MinIO backend for receipt files. Local disk when empty.
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// Optional Telegram notifications for new reservations.
	TelegramToken       string
	TelegramAdminChatID int64
}

func Load() (*Config, error) {
	// .env is optional, plain environment variables win in production
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	sessionMinutes, _ := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "60"))
	useSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	chatID, _ := strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN_CHAT_ID"), 10, 64)

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    getEnv("ENV", "development"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		SessionTTL:     time.Duration(sessionMinutes) * time.Minute,
		UploadDir:      getEnv("UPLOAD_DIR", "uploads/comprobantes"),

		MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "comprobantes"),
		MinIOUseSSL:    useSSL,

		TelegramToken:       os.Getenv("TELEGRAM_TOKEN"),
		TelegramAdminChatID: chatID,
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
