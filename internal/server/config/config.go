package config

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит конфигурацию сервера, читается из переменных окружения
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"board-admin.db"`
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"board-admin"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	SweepHour       int           `env:"SWEEP_HOUR" envDefault:"2"`
	SweepMinute     int           `env:"SWEEP_MINUTE" envDefault:"0"`
	CORSOrigin      string        `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

// New читает конфигурацию из окружения и валидирует ее
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("REFRESH_TOKEN_TTL must be positive")
	}
	if cfg.SweepHour < 0 || cfg.SweepHour > 23 {
		return nil, fmt.Errorf("SWEEP_HOUR must be in 0..23")
	}
	if cfg.SweepMinute < 0 || cfg.SweepMinute > 59 {
		return nil, fmt.Errorf("SWEEP_MINUTE must be in 0..59")
	}

	return cfg, nil
}

// SecretKey возвращает ключ подписи токенов.
// Если JWT_SECRET не задан, ключ генерируется заново: ключ живет столько,
// сколько живет процесс, и нигде не сохраняется. Рестарт процесса
// инвалидирует все выданные токены; для горизонтального масштабирования
// JWT_SECRET нужно задавать явно, чтобы все инстансы делили один ключ
func (c *Config) SecretKey() ([]byte, error) {
	if c.JWTSecret != "" {
		return []byte(c.JWTSecret), nil
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return key, nil
}
