package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	SlowRequest    time.Duration `mapstructure:"slow_request"`
}

// DatabaseConfig configures the optional change journal. An empty Driver
// disables it.
type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"` // postgres, sqlite
	URL     string `mapstructure:"url"`
	LogMode bool   `mapstructure:"log_mode"`
}

type AuthConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	JWTSecret    string `mapstructure:"jwt_secret"`
	ExpiryHours  int    `mapstructure:"expiry_hours"`
	PasscodeHash string `mapstructure:"passcode_hash"` // bcrypt hash of the shared salon passcode
}

type SalonConfig struct {
	Name           string   `mapstructure:"name"`
	Staff          []string `mapstructure:"staff"`
	Menus          []string `mapstructure:"menus"`
	DefaultMenu    string   `mapstructure:"default_menu"`
	StaffSelection bool     `mapstructure:"staff_selection"`
}

type TwilioConfig struct {
	AccountSID     string   `mapstructure:"account_sid"`
	AuthToken      string   `mapstructure:"auth_token"`
	PhoneNumber    string   `mapstructure:"phone_number"`
	WhatsAppNumber string   `mapstructure:"whatsapp_number"`
	Recipients     []string `mapstructure:"recipients"`
}

type DigestConfig struct {
	Schedule       string `mapstructure:"schedule"`
	ExportSchedule string `mapstructure:"export_schedule"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type KafkaConfig struct {
	Broker string `mapstructure:"broker"`
	Topic  string `mapstructure:"topic"`
}

type ElasticsearchConfig struct {
	URL          string `mapstructure:"url"`
	ClientIndex  string `mapstructure:"client_index"`
	SessionIndex string `mapstructure:"session_index"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
	Release     string `mapstructure:"release"`
}

type ExportConfig struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

// EventsConfig tunes the change dispatcher and the SSE stream.
type EventsConfig struct {
	QueueSize      int           `mapstructure:"queue_size"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
	Heartbeat      time.Duration `mapstructure:"heartbeat"`
}

type SeedConfig struct {
	Demo bool `mapstructure:"demo"`
}

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Salon         SalonConfig         `mapstructure:"salon"`
	Twilio        TwilioConfig        `mapstructure:"twilio"`
	Digest        DigestConfig        `mapstructure:"digest"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Sentry        SentryConfig        `mapstructure:"sentry"`
	Export        ExportConfig        `mapstructure:"export"`
	Events        EventsConfig        `mapstructure:"events"`
	Seed          SeedConfig          `mapstructure:"seed"`
}

var defaults = map[string]interface{}{
	"server.port":            "8080",
	"server.mode":            "release",
	"server.allowed_origins": []string{"http://localhost:3000"},
	"server.slow_request":    200 * time.Millisecond,

	"database.driver":   "",
	"database.url":      "",
	"database.log_mode": false,

	"auth.enabled":       false,
	"auth.jwt_secret":    "",
	"auth.expiry_hours":  24,
	"auth.passcode_hash": "",

	"salon.name":            "森の深眠スパ",
	"salon.staff":           []string{"寺島", "スタッフA", "スタッフB"},
	"salon.menus":           []string{"森の深眠スパ60分", "森の深眠スパ90分", "森の深眠スパ90分＋白髪カラー"},
	"salon.default_menu":    "森の深眠スパ90分",
	"salon.staff_selection": true,

	"twilio.account_sid":     "",
	"twilio.auth_token":      "",
	"twilio.phone_number":    "",
	"twilio.whatsapp_number": "",
	"twilio.recipients":      []string{},

	"digest.schedule":        "0 21 * * *",
	"digest.export_schedule": "30 23 * * *",

	"redis.addr":     "",
	"redis.password": "",
	"redis.ttl":      time.Minute,

	"kafka.broker": "",
	"kafka.topic":  "wellness_events",

	"elasticsearch.url":           "",
	"elasticsearch.client_index":  "wellness-clients",
	"elasticsearch.session_index": "wellness-sessions",

	"sentry.dsn":         "",
	"sentry.environment": "development",
	"sentry.release":     "dev",

	"export.bucket": "",
	"export.prefix": "exports/",
	"export.region": "ap-northeast-1",

	"events.queue_size":      256,
	"events.publish_timeout": 5 * time.Second,
	"events.heartbeat":       30 * time.Second,

	"seed.demo": true,
}

// Legacy env names still honoured.
var legacyEnv = map[string]string{
	"server.port":            "PORT",
	"database.url":           "DB_URL",
	"auth.jwt_secret":        "JWT_SECRET",
	"auth.expiry_hours":      "JWT_EXPIRY_HOURS",
	"twilio.account_sid":     "TWILIO_ACCOUNT_SID",
	"twilio.auth_token":      "TWILIO_AUTH_TOKEN",
	"twilio.phone_number":    "TWILIO_PHONE_NUMBER",
	"twilio.whatsapp_number": "TWILIO_WHATSAPP_NUMBER",
	"redis.addr":             "REDIS_HOST",
	"redis.password":         "REDIS_PASSWORD",
	"kafka.broker":           "KAFKA_BROKER",
	"elasticsearch.url":      "ELASTICSEARCH_URL",
	"sentry.dsn":             "SENTRY_DSN",
	"sentry.environment":     "APP_ENV",
	"sentry.release":         "APP_VERSION",
}

// Load builds the configuration from defaults, an optional config file and
// the environment. Environment keys are the upper-cased dotted path with
// underscores (e.g. SALON_STAFF), plus the legacy names above.
// Lists are comma separated.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Database.Driver == "" && c.Database.URL != "" {
		c.Database.Driver = "postgres"
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return nil, errors.New("auth.enabled requires auth.jwt_secret (JWT_SECRET)")
	}
	return &c, nil
}
