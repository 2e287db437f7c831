// config реализует конфигурацию posts-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/robfig/cron/v3"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	DB        DBConfig        `yaml:"db"`
	Relations RelationsConfig `yaml:"relations"`
	Redis     RedisConfig     `yaml:"redis"`
	S3        S3Config        `yaml:"s3"`
	Auth      AuthConfig      `yaml:"auth"`
	Limits    LimitsConfig    `yaml:"limits"`
	Fanout    FanoutConfig    `yaml:"fanout"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// HTTPConfig — HTTP API + health/metrics.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — MongoDB (Entity Store). Имя БД берётся из Name,
// а если оно пустое — из пути URI.
type DBConfig struct {
	URL  string `yaml:"url"  env:"DATABASE_URL" env-required:"true"`
	Name string `yaml:"name" env:"DATABASE_NAME"`
}

// RelationsConfig — PostgreSQL (Relation Store).
type RelationsConfig struct {
	URL string `yaml:"url" env:"RELATIONS_URL" env-required:"true"`
}

// RedisConfig — кэш справочника каналов. Пустой URL отключает кэш.
type RedisConfig struct {
	URL        string        `yaml:"url"         env:"REDIS_URL"`
	ChannelTTL time.Duration `yaml:"channel_ttl" env:"REDIS_CHANNEL_TTL" env-default:"1m"`
}

// S3Config — проверка наличия загруженных изображений в MinIO/S3.
type S3Config struct {
	Enabled      bool   `yaml:"enabled"       env:"S3_ENABLED"       env-default:"false"`
	Endpoint     string `yaml:"endpoint"      env:"S3_ENDPOINT"      env-default:"localhost:9000"`
	RootUser     string `yaml:"root_user"     env:"S3_ROOT_USER"`
	RootPassword string `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	UseSSL       bool   `yaml:"use_ssl"       env:"S3_USE_SSL"       env-default:"false"`
	Bucket       string `yaml:"bucket"        env:"S3_BUCKET"        env-default:"images"`
	ImagePrefix  string `yaml:"image_prefix"  env:"S3_IMAGE_PREFIX"  env-default:"post/"`
}

// AuthConfig — проверка сессионного JWT. Выпуск токенов вне сервиса.
type AuthConfig struct {
	JWTSecret  string `yaml:"jwt_secret"  env:"JWT_SECRET"  env-required:"true"`
	Issuer     string `yaml:"issuer"      env:"JWT_ISSUER"  env-default:"auth-service"`
	Audience   string `yaml:"audience"    env:"JWT_AUDIENCE"`
	CookieName string `yaml:"cookie_name" env:"AUTH_COOKIE" env-default:"session"`
}

// LimitsConfig — ограничения на входные данные поста.
type LimitsConfig struct {
	// Лишние упоминания отбрасываются молча, а не отклоняются.
	MaxCues        int `yaml:"max_cues"         env:"MAX_CUES"         env-default:"12"`
	MaxTopics      int `yaml:"max_topics"       env:"MAX_TOPICS"       env-default:"10"`
	MaxTitleLength int `yaml:"max_title_length" env:"MAX_TITLE_LENGTH" env-default:"300"`
	MaxParagraphs  int `yaml:"max_paragraphs"   env:"MAX_PARAGRAPHS"   env-default:"500"`
	MaxImages      int `yaml:"max_images"       env:"MAX_IMAGES"       env-default:"30"`
	MaxTopicLength int `yaml:"max_topic_length" env:"MAX_TOPIC_LENGTH" env-default:"64"`
}

// FanoutConfig — outbox и пул воркеров вторичных записей.
type FanoutConfig struct {
	Workers      int           `yaml:"workers"       env:"FANOUT_WORKERS"       env-default:"4"`
	PollInterval time.Duration `yaml:"poll_interval" env:"FANOUT_POLL_INTERVAL" env-default:"1s"`
	MaxAttempts  int           `yaml:"max_attempts"  env:"FANOUT_MAX_ATTEMPTS"  env-default:"8"`
	BackoffBase  time.Duration `yaml:"backoff_base"  env:"FANOUT_BACKOFF_BASE"  env-default:"1s"`
	BackoffMax   time.Duration `yaml:"backoff_max"   env:"FANOUT_BACKOFF_MAX"   env-default:"5m"`
	Lease        time.Duration `yaml:"lease"         env:"FANOUT_LEASE"         env-default:"30s"`
	// Сколько хранить завершённые задачи перед удалением.
	Retention time.Duration `yaml:"retention" env:"FANOUT_RETENTION" env-default:"168h"`
	// Cron-выражение обслуживания outbox (robfig/cron).
	Maintenance string `yaml:"maintenance" env:"FANOUT_MAINTENANCE" env-default:"@every 1m"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"5s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	switch c.Env {
	case "local", "dev", "prod":
	default:
		return fmt.Errorf("env must be one of local|dev|prod, got %q", c.Env)
	}

	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Relations.URL == "" {
		return fmt.Errorf("relations.url is required")
	}

	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("auth.jwt_secret must be at least 16 bytes")
	}

	if c.Redis.URL != "" && c.Redis.ChannelTTL <= 0 {
		return fmt.Errorf("redis.channel_ttl must be > 0")
	}

	if c.S3.Enabled && (c.S3.Endpoint == "" || c.S3.Bucket == "") {
		return fmt.Errorf("s3.endpoint and s3.bucket are required when s3.enabled")
	}

	l := c.Limits
	if l.MaxCues <= 0 || l.MaxTopics <= 0 || l.MaxTitleLength <= 0 ||
		l.MaxParagraphs <= 0 || l.MaxImages <= 0 || l.MaxTopicLength <= 0 {
		return fmt.Errorf("limits must be > 0")
	}

	f := c.Fanout
	if f.Workers <= 0 {
		return fmt.Errorf("fanout.workers must be > 0")
	}

	if f.MaxAttempts <= 0 {
		return fmt.Errorf("fanout.max_attempts must be > 0")
	}

	if f.PollInterval <= 0 || f.Lease <= 0 || f.BackoffBase <= 0 {
		return fmt.Errorf("fanout.poll_interval, fanout.lease and fanout.backoff_base must be > 0")
	}

	if f.BackoffMax < f.BackoffBase {
		return fmt.Errorf("fanout.backoff_max must be >= fanout.backoff_base")
	}

	if f.Retention < time.Hour {
		return fmt.Errorf("fanout.retention must be at least 1h")
	}

	if _, err := cron.ParseStandard(f.Maintenance); err != nil {
		return fmt.Errorf("fanout.maintenance: %w", err)
	}

	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}

	return nil
}
