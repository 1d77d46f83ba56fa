package configs

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type ENV struct {
	AppEnv   string
	Port     string
	LogLevel string

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	AppAuthKey string
	AppEncKey  string
	CSRFKey    string

	StorageDriver string
	MediaRoot     string
	MediaURL      string
	S3Bucket      string
	S3Region      string

	TemplateDir string
	StaticDir   string
}

func (e ENV) IsDevelopment() bool {
	return e.AppEnv == "" || e.AppEnv == "development"
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Msg("No .env file found, using process environment")
	}

	return ENV{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("APP_PORT", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "catalog"),
		DBPort:     os.Getenv("DB_PORT"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AppAuthKey: os.Getenv("APP_AUTH_KEY"),
		AppEncKey:  os.Getenv("APP_ENC_KEY"),
		CSRFKey:    os.Getenv("CSRF_KEY"),

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		MediaRoot:     getEnv("MEDIA_ROOT", "media"),
		MediaURL:      getEnv("MEDIA_URL", "/media/"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),

		TemplateDir: getEnv("TEMPLATE_DIR", "templates"),
		StaticDir:   getEnv("STATIC_DIR", "static"),
	}

}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
