package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Antonisiy/jokeapi/jokeapi"
)

// Configuration constants and variables
const (
	Version = "2.0.0"
)

var (
	// Глобальный логгер
	logger = logrus.New()
)

// Config настройки сервиса из YAML-файла
type Config struct {
	Port             string           `yaml:"port"`
	BaseURL          string           `yaml:"base_url"`
	Language         jokeapi.Language `yaml:"language"`
	BlacklistFlags   []jokeapi.Flag   `yaml:"blacklist_flags"`
	RequestTimeout   time.Duration    `yaml:"request_timeout"`
	LogLevel         string           `yaml:"log_level"`
	AllowedOrigins   []string         `yaml:"allowed_origins"`
	TelegramBotToken string           `yaml:"telegram_bot_token"`
}

// defaultConfig все значения по умолчанию в одном месте
func defaultConfig() *Config {
	return &Config{
		Port:           "8888",
		BaseURL:        jokeapi.DefaultBaseURL,
		Language:       jokeapi.DefaultLanguage,
		RequestTimeout: 3 * time.Second,
		LogLevel:       "debug",
		// Разрешенные CORS origins
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost",
		},
	}
}

// LoadConfig читает конфиг поверх значений по умолчанию.
// Отсутствующий файл не ошибка.
func LoadConfig(filename string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("ошибка разбора %s: %w", filename, err)
	}
	// пустой список в YAML означает "без фильтров", а не пустой фильтр
	if len(config.BlacklistFlags) == 0 {
		config.BlacklistFlags = nil
	}
	if config.RequestTimeout <= 0 {
		return nil, fmt.Errorf("request_timeout должен быть положительным, получено %s", config.RequestTimeout)
	}

	return config, nil
}

// setupLogger настраивает глобальный логгер
func setupLogger(cfg *Config) error {
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: false,
	})
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}
