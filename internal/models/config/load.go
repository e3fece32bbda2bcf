package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DatabaseConfig конфигурация БД
type DatabaseConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Name     string
	SSLMode  string
}

// Load загружает конфигурацию
func Load() error {
	// .env опционален: в проде переменные приходят из окружения
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	AppConfig = &Config{
		Environment: env,
		HTTPAddr:    getEnv("HTTP_ADDR", "127.0.0.1:8081"),
		Bot: BotConfig{
			Token:       getEnv("BOT_TOKEN", ""),
			Debug:       getEnvAsBool("BOT_DEBUG", env != "production"),
			AdminIDs:    parseAdminIDs(getEnv("ADMIN_IDS", "")),
			CallbackURL: getEnv("BOT_CALLBACK_URL", "http://127.0.0.1:8081/auth_success"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Username: getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "homework-db"),
			SSLMode:  getSSLMode(env),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "student_bot_db"),
		},
		Google: GoogleConfig{
			ClientID:           getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret:       getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURI:        getEnv("GOOGLE_REDIRECT_URI", ""),
			TokenDir:           getEnv("TOKEN_DIR", "tokens"),
			ServiceAccountFile: getEnv("GOOGLE_SA_FILE", "service_account.json"),
			SpreadsheetID:      getEnv("SHEETS_SPREADSHEET_ID", ""),
			TextbooksFolder:    getEnv("TEXTBOOKS_FOLDER_ID", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
		},
	}

	return validate()
}

// validate проверяет обязательные параметры
func validate() error {
	var errors []string

	if AppConfig.Bot.Token == "" {
		errors = append(errors, "BOT_TOKEN is required")
	}

	if AppConfig.Database.Username == "" {
		errors = append(errors, "DB_USER is required")
	}

	if AppConfig.Database.Password == "" && AppConfig.Environment == "production" {
		errors = append(errors, "DB_PASSWORD is required in production")
	}

	if AppConfig.Google.ClientID == "" || AppConfig.Google.ClientSecret == "" {
		errors = append(errors, "GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errors, ", "))
	}

	return nil
}

// getSSLMode возвращает режим SSL в зависимости от окружения
func getSSLMode(env string) string {
	if env == "production" {
		return "require"
	}
	return "disable"
}

// parseAdminIDs парсит список ID администраторов
func parseAdminIDs(ids string) []int64 {
	if ids == "" {
		return []int64{}
	}

	var result []int64
	for _, idStr := range strings.Split(ids, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64); err == nil {
			result = append(result, id)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
