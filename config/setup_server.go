package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	ServerAddr     string         `yaml:"serverAddr"`
	S3Config       S3Config       `yaml:"s3Config"`
	JWT            JWTConfig      `yaml:"jwt"`
	Upload         UploadConfig   `yaml:"upload"`
	TTL            TTL            `yaml:"TTL"`
}

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if cfg.JWT.SecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET не задан ни в конфиге, ни в окружении")
	}

	return &cfg, nil
}

// applyEnvOverrides : переменные окружения имеют приоритет над yaml —
// секреты в конфиг-файл не попадают
func (cfg *AppConfig) applyEnvOverrides() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.SecretKey = v
	}
	if v := os.Getenv("JWT_REFRESH_SECRET"); v != "" {
		cfg.JWT.RefreshSecretKey = v
	}
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		cfg.JWT.AccessTokenTTL = v
	}
	if v := os.Getenv("JWT_REFRESH_EXPIRES_IN"); v != "" {
		cfg.JWT.RefreshTokenTTL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseConfig.DSN = v
	}

	if cfg.JWT.AccessTokenTTL == "" {
		cfg.JWT.AccessTokenTTL = "30m"
	}
	if cfg.JWT.RefreshTokenTTL == "" {
		cfg.JWT.RefreshTokenTTL = "30d"
	}
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
