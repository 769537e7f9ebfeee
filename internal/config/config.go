// Package config содержит логику чтения конфигурации сервиса AM Store.
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса AM Store.
type Config struct {
	RunAddress       string `env:"RUN_ADDRESS"`
	DatabaseURI      string `env:"DATABASE_URI"`
	RedisAddr        string `env:"REDIS_ADDR"`
	AdminPassword    string `env:"ADMIN_PASSWORD"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatIDs  string `env:"TELEGRAM_CHAT_IDS"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envRedisAddr := cfg.RedisAddr
	envAdminPassword := cfg.AdminPassword
	envBotToken := cfg.TelegramBotToken
	envChatIDs := cfg.TelegramChatIDs

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.RedisAddr, "r", "", "redis address")
	flag.StringVar(&cfg.AdminPassword, "p", "", "admin passphrase")
	flag.StringVar(&cfg.TelegramBotToken, "t", "", "telegram bot token")
	flag.StringVar(&cfg.TelegramChatIDs, "c", "", "comma-separated telegram chat ids")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envRedisAddr != "" {
		cfg.RedisAddr = envRedisAddr
	}
	if envAdminPassword != "" {
		cfg.AdminPassword = envAdminPassword
	}
	if envBotToken != "" {
		cfg.TelegramBotToken = envBotToken
	}
	if envChatIDs != "" {
		cfg.TelegramChatIDs = envChatIDs
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}

// ChatIDs возвращает список идентификаторов чатов-получателей уведомлений.
func (c *Config) ChatIDs() []string {
	if c.TelegramChatIDs == "" {
		return nil
	}

	parts := strings.Split(c.TelegramChatIDs, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
