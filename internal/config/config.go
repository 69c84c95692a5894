package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mlefevre/diabecare/internal/logger"
)

type Config struct {
	Storage  StorageConfig
	Telegram TelegramConfig
	Export   ExportConfig
	Logger   LoggerConfig
}

// StorageConfig selects and parameterizes the key-value backend.
type StorageConfig struct {
	Driver     string // "sqlite", "redis", "postgres" or "memory"
	SQLitePath string
	Redis      RedisConfig
	DB         DBConfig
}

type RedisConfig struct {
	Host string
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

type ExportConfig struct {
	Dir string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	driver := strings.ToLower(getEnvOrDefault("STORAGE_DRIVER", "sqlite"))
	switch driver {
	case "sqlite", "redis", "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	var chatID int64
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		chatID = parsed
	}

	return &Config{
		Storage: StorageConfig{
			Driver:     driver,
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "data/diabecare.db"),
			Redis: RedisConfig{
				Host: getEnvOrDefault("REDIS_HOST", "localhost"),
				Port: getEnvOrDefault("REDIS_PORT", "6379"),
			},
			DB: DBConfig{
				Host:     getEnvOrDefault("DB_HOST", "localhost"),
				Port:     getEnvOrDefault("DB_PORT", "5432"),
				User:     getEnvOrDefault("DB_USER", "postgres"),
				Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
				DBName:   getEnvOrDefault("DB_NAME", "diabecare"),
			},
		},
		Telegram: TelegramConfig{
			Token:  os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID: chatID,
		},
		Export: ExportConfig{
			Dir: getEnvOrDefault("EXPORT_DIR", "exports"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
