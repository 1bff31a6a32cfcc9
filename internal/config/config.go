package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Host string `env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" env-default:"8080"`
	// TimeZone is the zone in which "today" is evaluated for the
	// relative date-range filters.
	TimeZone string `env:"TIME_ZONE" env-default:"Local"`
}

type DatabaseConfig struct {
	ConnectionString string        `env:"DB_CONNECTION_STRING" env-required:"true"`
	MaxOpenConns     int           `env:"DB_MAX_OPEN_CONNS" env-default:"50"`
	MaxIdleConns     int           `env:"DB_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
}

type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"10m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
}

// Load reads .env (when present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s ServerConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.TimeZone)
}
