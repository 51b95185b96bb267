package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	ServerPort  string
	BotBaseURL  string
	BotAPIKey   string
	AllowOrigin string
	AdminEmail  string
	AdminName   string
	AdminPass   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	return &Config{
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "opinebot"),
		JWTSecret:   getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		BotBaseURL:  getEnv("FEEDBACK_BACKEND_URL", ""),
		BotAPIKey:   getEnv("FEEDBACK_BACKEND_KEY", ""),
		// credentialed CORS cannot use a wildcard origin, so the
		// default names the local frontend explicitly
		AllowOrigin: getEnv("ALLOW_ORIGIN", "http://localhost:3000"),
		AdminEmail:  getEnv("ADMIN_EMAIL", "admin@opinebot.local"),
		AdminName:   getEnv("ADMIN_NAME", "admin"),
		AdminPass:   getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
