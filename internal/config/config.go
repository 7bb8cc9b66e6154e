package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret          string
	TokenExpireMinutes int

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string
	ResetURLBase string

	GinMode  string
	LogLevel string
}

func Load() *Config {
	// A missing .env is fine; deployments set the environment directly
	_ = godotenv.Load()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "lexcontract"),
		DBPassword: getEnv("DB_PASSWORD", "lexcontract"),
		DBName:     getEnv("DB_NAME", "lexcontract"),

		JWTSecret:          getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenExpireMinutes: getEnvInt("TOKEN_EXPIRE_MINUTES", 60),

		MailHost:     getEnv("MAIL_SERVER", ""),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUsername: getEnv("MAIL_USERNAME", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@lexcontract.local"),
		MailFromName: getEnv("MAIL_FROM_NAME", "LexContract"),
		ResetURLBase: getEnv("RESET_URL_BASE", "http://localhost:5173/reset-password"),

		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
