package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Booking  BookingConfig  `yaml:"booking"`
	Turf     TurfConfig     `yaml:"turf"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address" env:"HTTP_ADDRESS, overwrite"`
	SwaggerDir     string   `yaml:"swagger_dir" env:"HTTP_SWAGGER_DIR, overwrite"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS, overwrite"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST, overwrite"`
	Port     int    `yaml:"port" env:"DB_PORT, overwrite"`
	User     string `yaml:"user" env:"DB_USER, overwrite"`
	Password string `yaml:"password" env:"DB_PASSWORD, overwrite"`
	Name     string `yaml:"name" env:"DB_NAME, overwrite"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE, overwrite"`
	Migrate  bool   `yaml:"migrate" env:"DB_MIGRATE, overwrite"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR, overwrite"`
	Password string `yaml:"password" env:"REDIS_PASSWORD, overwrite"`
	DB       int    `yaml:"db" env:"REDIS_DB, overwrite"`
	// DayMarkerTTLHours is how long a "day generated" marker lives. 0 keeps it forever.
	DayMarkerTTLHours int `yaml:"day_marker_ttl_hours" env:"REDIS_DAY_MARKER_TTL_HOURS, overwrite"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" env:"KAFKA_BROKERS, overwrite"`
	NotificationsTopic string   `yaml:"notifications_topic" env:"KAFKA_NOTIFICATIONS_TOPIC, overwrite"`
	GroupID            string   `yaml:"group_id" env:"KAFKA_GROUP_ID, overwrite"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret" env:"JWT_SECRET, overwrite"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"TOKEN_TTL_MINUTES, overwrite"`
}

type BookingConfig struct {
	PageSize   int    `yaml:"page_size" env:"BOOKING_PAGE_SIZE, overwrite"`
	OwnerEmail string `yaml:"owner_email" env:"BOOKING_OWNER_EMAIL, overwrite"`
}

// TurfConfig is the static facility description shown to every visitor.
type TurfConfig struct {
	Name     string `yaml:"name" env:"TURF_NAME, overwrite"`
	Location string `yaml:"location" env:"TURF_LOCATION, overwrite"`
	Size     string `yaml:"size" env:"TURF_SIZE, overwrite"`
	Surface  string `yaml:"surface" env:"TURF_SURFACE, overwrite"`
}

type WorkerConfig struct {
	PregenerateDays       int `yaml:"pregenerate_days" env:"WORKER_PREGENERATE_DAYS, overwrite"`
	PregenerateSweepHours int `yaml:"pregenerate_sweep_hours" env:"WORKER_PREGENERATE_SWEEP_HOURS, overwrite"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL, overwrite"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY, overwrite"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

func (r RedisConfig) DayMarkerTTL() time.Duration {
	return time.Duration(r.DayMarkerTTLHours) * time.Hour
}

// LoadConfig reads the YAML file at path (a missing file is not an error),
// applies environment overrides and fills defaults for anything left empty.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Kafka.NotificationsTopic == "" {
		c.Kafka.NotificationsTopic = "turf.notifications"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "turf-notifier"
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		c.Auth.TokenTTLMinutes = 24 * 60
	}
	if c.Booking.PageSize <= 0 {
		c.Booking.PageSize = 3
	}
	if c.Booking.OwnerEmail == "" {
		c.Booking.OwnerEmail = "owner@example.com"
	}
	if c.Worker.PregenerateSweepHours <= 0 {
		c.Worker.PregenerateSweepHours = 6
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
