package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	AdminUserIDs  []int64
	Environment   string

	MongoURI      string
	MongoDatabase string

	GoogleServiceAccountFile string
	GoogleDriveFolderID      string
	GoogleSheetsID           string
	GoogleSheetsName         string
	GoogleOAuthClientSecret  string
	GoogleOAuthToken         string

	MetaAccessToken    string
	FacebookPageID     string
	InstagramAccountID string

	PostCheckInterval time.Duration
	Timezone          string

	RedisAddr     string
	RedisPassword string
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminUserIDs:  parseAdminIDs(os.Getenv("ADMIN_USER_IDS")),
		Environment:   os.Getenv("ENV"),

		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: os.Getenv("MONGODB_DATABASE"),

		GoogleServiceAccountFile: os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"),
		GoogleDriveFolderID:      os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),
		GoogleSheetsID:           os.Getenv("GOOGLE_SHEETS_ID"),
		GoogleSheetsName:         os.Getenv("GOOGLE_SHEETS_NAME"),
		GoogleOAuthClientSecret:  os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET"),
		GoogleOAuthToken:         os.Getenv("GOOGLE_OAUTH_TOKEN"),

		MetaAccessToken:    os.Getenv("META_ACCESS_TOKEN"),
		FacebookPageID:     os.Getenv("FACEBOOK_PAGE_ID"),
		InstagramAccountID: os.Getenv("INSTAGRAM_ACCOUNT_ID"),

		Timezone: os.Getenv("TIMEZONE"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	// Дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "training_center"
	}
	if cfg.GoogleServiceAccountFile == "" {
		cfg.GoogleServiceAccountFile = "credentials.json"
	}
	if cfg.GoogleSheetsName == "" {
		cfg.GoogleSheetsName = "Sheet1"
	}
	if cfg.GoogleOAuthClientSecret == "" {
		cfg.GoogleOAuthClientSecret = "client_secret.json"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Damascus"
	}

	intervalMinutes := 5
	if v := os.Getenv("POST_CHECK_INTERVAL_MINUTES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid POST_CHECK_INTERVAL_MINUTES: %q", v)
		}
		intervalMinutes = parsed
	}
	cfg.PostCheckInterval = time.Duration(intervalMinutes) * time.Minute

	// Обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required but not set")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required but not set")
	}

	return cfg, nil
}

// IsAdmin проверяет является ли пользователь администратором
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminUserIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// parseAdminIDs парсит список ID администраторов через запятую,
// нечисловые значения молча пропускаются
func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
