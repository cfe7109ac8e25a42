// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	JWTAlgorithm string        `yaml:"jwt_algorithm" env:"JWT_ALGORITHM" env-default:"HS256"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"15m"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH.
//
// Отсутствие файла, секретного ключа или алгоритма подписи — фатальная
// ошибка запуска процесса.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.JWTSecretKey == "" {
		log.Fatal("jwt_secret_key is not set")
	}
	if cfg.JWTAlgorithm == "" {
		log.Fatal("jwt_algorithm is not set")
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTAlgorithm: %s\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.StorageConnectionString,
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.JWTAlgorithm,
		c.TokenTTL,
	)
}
