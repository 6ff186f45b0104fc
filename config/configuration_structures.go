package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

// JWTConfig : секреты и сроки жизни токенов.
// RefreshSecretKey может быть пустым — тогда refresh токены подписываются
// SecretKey — без криптографического разделения классов токенов
type JWTConfig struct {
	SecretKey        string `yaml:"secret_key"`
	RefreshSecretKey string `yaml:"refresh_secret_key"`
	AccessTokenTTL   string `yaml:"access_token_ttl"`
	RefreshTokenTTL  string `yaml:"refresh_token_ttl"`
}

type UploadConfig struct {
	MaxSizeBytes int64 `yaml:"max_size_bytes"`
	URLTTL       int64 `yaml:"url_ttl"`
}

type TTL struct {
	PostCache int64 `yaml:"postCache"`
}
