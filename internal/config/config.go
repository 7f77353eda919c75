package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const EnvPrefix = "TASKIFY"

const DefaultPath = "config.yml"

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Mongo         MongoConfig         `mapstructure:"mongo"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Repository    RepositoryConfig    `mapstructure:"repository"`
	Auth          AuthConfig          `mapstructure:"auth"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Attachments   AttachmentsConfig   `mapstructure:"attachments"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int32         `mapstructure:"max_connections"`
	MinConnections int32         `mapstructure:"min_connections"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Migrate        bool          `mapstructure:"migrate"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// RedisConfig: пустой URL означает лимиты в памяти процесса
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"` // debug, info, warn, error; пусто - по режиму
}

type RepositoryConfig struct {
	Type string `mapstructure:"type"` // "postgres", "mongo" или "inmemory"
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	SweepInterval     time.Duration `mapstructure:"sweep_interval"`
}

type NotificationsConfig struct {
	TimeZone string `mapstructure:"time_zone"`
}

type AttachmentsConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 15<<20)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)
	v.SetDefault("database.connect_timeout", 30*time.Second)
	v.SetDefault("database.migrate", true)

	v.SetDefault("database.url", "")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "taskify")
	v.SetDefault("redis.url", "")

	v.SetDefault("repository.type", "inmemory")
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 720*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 100)
	v.SetDefault("rate_limit.sweep_interval", time.Minute)

	v.SetDefault("notifications.time_zone", "Local")
	v.SetDefault("attachments.max_size_bytes", 10<<20)
}

// Load читает YAML, затем .env и переменные окружения TASKIFY_*.
// Отсутствующий файл не ошибка: остаются значения по умолчанию
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения .env: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("конфигурация: database.url обязателен для postgres")
		}
	case "mongo":
		if c.Mongo.URI == "" {
			return errors.New("конфигурация: mongo.uri обязателен для mongo")
		}
	case "inmemory":
	default:
		return fmt.Errorf("конфигурация: неизвестный тип репозитория %q", c.Repository.Type)
	}

	if c.Auth.JWTSecret == "" && !c.Logging.Development {
		return errors.New("конфигурация: auth.jwt_secret обязателен вне режима разработки")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("конфигурация: auth.token_ttl должен быть положительным")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return errors.New("конфигурация: rate_limit.requests_per_minute должен быть положительным")
	}
	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("конфигурация: неизвестный logging.level %q", c.Logging.Level)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Location - часовой пояс для границ "сегодня" в уведомлениях
func (c *Config) Location() (*time.Location, error) {
	name := c.Notifications.TimeZone
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("конфигурация: неизвестный часовой пояс %q: %w", name, err)
	}
	return loc, nil
}

// DevSecret подставляется только в режиме разработки
const DevSecret = "taskify-dev-secret"

func (c *Config) JWTSecret() string {
	if c.Auth.JWTSecret == "" {
		return DevSecret
	}
	return c.Auth.JWTSecret
}
