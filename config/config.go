package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// SupportedLanguages are the menu languages offered to customers.
var SupportedLanguages = map[string]string{
	"en": "English",
	"it": "Italiano",
	"fr": "Français",
	"es": "Español",
	"de": "Deutsch",
}

// Config carries every externally-configured value. It is loaded once in main
// and threaded explicitly into the services that need it, so nothing reads the
// environment mid-request.
type Config struct {
	Port string

	MySQLDSN      string
	MongoURI      string
	MongoDatabase string

	JWTSecret string

	Currency        string
	DefaultLanguage string

	TranslateEndpoint string
	TranslateAPIKey   string

	OrderConfirmationURL string

	UploadDir string
}

// Load reads an optional .env file and assembles the configuration.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		MySQLDSN:             os.Getenv("MYSQL_DSN"),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:        getEnv("MONGO_DATABASE", "trattoria"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Currency:             getEnv("ORDER_CURRENCY", "GBP"),
		DefaultLanguage:      getEnv("DEFAULT_LANGUAGE", "en"),
		TranslateEndpoint:    getEnv("TRANSLATE_ENDPOINT", "https://translation.googleapis.com/language/translate/v2"),
		TranslateAPIKey:      os.Getenv("TRANSLATE_API_KEY"),
		OrderConfirmationURL: os.Getenv("ORDER_CONFIRMATION_URL"),
		UploadDir:            getEnv("UPLOAD_DIR", "public/uploads/menu_images"),
	}

	if _, ok := SupportedLanguages[cfg.DefaultLanguage]; !ok {
		cfg.DefaultLanguage = "en"
	}

	return cfg
}

// NormalizeLanguage lower-cases a requested language code and falls back to
// the default for anything unsupported.
func (c *Config) NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := SupportedLanguages[lang]; ok {
		return lang
	}
	return c.DefaultLanguage
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
