// Package config предоставляет структуры и функции для парсинга и загрузки конфига.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	Redis                   RedisConnection `yaml:"redis_connection"`
	Token                   Token           `yaml:"token"`
	RabbitMQ                RabbitMQ        `yaml:"rabbitmq"`
	ObjectStorage           ObjectStorage   `yaml:"object_storage"`
	RateLimit               RateLimit       `yaml:"rate_limit"`
	CORS                    CORS            `yaml:"cors"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env-default:":8000"`
	TimeoutHTTP time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кэш токенов.
type RedisConnection struct {
	Addr        string        `yaml:"address" env:"REDIS_ADDR"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
}

// Token настройки токенов доступа.
type Token struct {
	SecretKey string        `yaml:"secret_key" env:"TOKEN_SECRET_KEY" env-required:"true"`
	TTL       time.Duration `yaml:"ttl"` // 0: бессрочный токен
	CacheTTL  time.Duration `yaml:"cache_ttl" env-default:"10m"`
}

// RabbitMQ настройки публикации событий заказов. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env-default:"coderr.orders"`
}

// ObjectStorage настройки S3-совместимого хранилища файлов. Пустой endpoint отключает загрузку.
type ObjectStorage struct {
	Endpoint  string `yaml:"endpoint" env:"OBJECT_STORAGE_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"OBJECT_STORAGE_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"OBJECT_STORAGE_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env-default:"coderr"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url"`
}

// RateLimit ограничение частоты запросов к регистрации и входу на один IP.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"5"`
}

// CORS разрешённые источники фронтенда.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env-default:"*"`
}

// Load читает конфиг из файла, дополняя его переменными окружения.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}
