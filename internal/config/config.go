// Package config предоставляет структуры и функции для загрузки конфигурации сервиса.
//
// Источники настроек по приоритету: переменные окружения, YAML-файл из CONFIG_PATH
// (если задан), необязательный .env в рабочей директории, значения по умолчанию из тегов.
package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Storage    Storage    `yaml:"storage"`
	Accounts   Accounts   `yaml:"accounts"`
	Redis      Redis      `yaml:"redis_connection"`
	RabbitMQ   RabbitMQ   `yaml:"rabbitmq"`
	RateLimit  RateLimit  `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	Host        string        `yaml:"host" env:"HOST"`
	Port        string        `yaml:"port" env:"PORT" env-default:"3000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Storage настройки файлового хранилища пользователей
type Storage struct {
	UsersFile string `yaml:"users_file" env:"USERS_FILE" env-default:"./users.json"`
}

// Accounts описывает начальный набор учётных записей.
type Accounts struct {
	AdminUsername        string `yaml:"admin_username" env:"ADMIN_USERNAME" env-default:"admin"`
	AdminPassword        string `yaml:"admin_password" env:"ADMIN_PASSWORD" env-default:"12345"`
	AdminProfilePicURL   string `yaml:"admin_profile_pic_url" env:"ADMIN_PROFILE_PIC_URL" env-default:"https://files.catbox.moe/admin.jpg"`
	DefaultProfilePicURL string `yaml:"default_profile_pic_url" env:"DEFAULT_PROFILE_PIC_URL" env-default:"https://files.catbox.moe/default.jpg"`
	SeedDemoUser         bool   `yaml:"seed_demo_user" env:"SEED_DEMO_USER" env-default:"true"`
}

// Redis структура для настройки подключения к redis.
// Пустой адрес отключает кеш.
type Redis struct {
	Address     string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user" env:"REDIS_USER"`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries  int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
	TTL         time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"10m"`
}

// RabbitMQ настройки передачи исходящих сообщений.
// Пустой URL означает, что отправка только логируется.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"outbound"`
	Queue      string        `yaml:"queue" env:"RABBITMQ_QUEUE" env-default:"outbound.pesan"`
	RoutingKey string        `yaml:"routing_key" env:"RABBITMQ_ROUTING_KEY" env-default:"pesan"`
	Retries    int           `yaml:"retries" env:"RABBITMQ_RETRIES" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"2s"`
}

// RateLimit ограничение частоты запросов к API.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"20"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"40"`
}

// Load читает конфигурацию. Файл .env подхватывается, если он есть.
func Load() (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: load .env: %w", op, err)
	}

	var cfg Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%s: config file %s: %w", op, configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Address возвращает адрес для http.Server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.HTTPServer.Host, c.HTTPServer.Port)
}

func (c *Config) validate() error {
	if c.HTTPServer.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.Storage.UsersFile == "" {
		return errors.New("USERS_FILE must not be empty")
	}
	if c.Accounts.AdminUsername == "" {
		return errors.New("ADMIN_USERNAME must not be empty")
	}
	if c.Accounts.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD must not be empty")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Storage:\n"+
			"  UsersFile: %s\n"+
			"Accounts:\n"+
			"  AdminUsername: %s\n"+
			"  SeedDemoUser: %t\n"+
			"Redis:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  TTL: %s\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n"+
			"  Queue: %s\n"+
			"RateLimit:\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n",
		c.Env,
		c.Address(),
		c.HTTPServer.TimeoutHTTP,
		c.HTTPServer.IdleTimeout,
		c.Storage.UsersFile,
		c.Accounts.AdminUsername,
		c.Accounts.SeedDemoUser,
		c.Redis.Address,
		c.Redis.DB,
		c.Redis.TTL,
		c.RabbitMQ.Exchange,
		c.RabbitMQ.Queue,
		c.RateLimit.RPS,
		c.RateLimit.Burst,
	)
}
