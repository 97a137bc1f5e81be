package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Auth provider names accepted in AUTH_PROVIDERS
const (
	ProviderCasdoor = "casdoor"
	ProviderGoogle  = "google"
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string

	Database      DatabaseConfig
	RedisURL      string
	Cache         CacheConfig
	Casdoor       CasdoorConfig
	Google        GoogleConfig
	AuthProviders []string
	Kafka         KafkaConfig
	Meeting       MeetingConfig
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	LogQueries      bool
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the discrete settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type CacheConfig struct {
	UserTTL  time.Duration
	VideoTTL time.Duration
}

type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// Enabled reports whether enough settings are present to talk to Casdoor.
func (c CasdoorConfig) Enabled() bool {
	return c.Endpoint != "" && c.ClientID != "" && c.Cert != ""
}

type GoogleConfig struct {
	ClientID string
}

type KafkaConfig struct {
	Brokers     []string
	TopicPrefix string
}

// Enabled reports whether events should go to Kafka instead of the in-process channel.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type MeetingConfig struct {
	AppID        int64
	ServerSecret string
	BaseURL      string
	TokenTTL     time.Duration
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// LoadConfig reads configuration from the environment and an optional .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:           v.GetString("PORT"),
		Environment:    v.GetString("ENVIRONMENT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS")),
		RedisURL:       v.GetString("REDIS_URL"),
		AuthProviders:  splitAndTrim(strings.ToLower(v.GetString("AUTH_PROVIDERS"))),
	}

	cfg.Database = DatabaseConfig{
		URL:             v.GetString("DATABASE_URL"),
		Host:            v.GetString("DB_HOST"),
		Port:            v.GetInt("DB_PORT"),
		User:            v.GetString("DB_USER"),
		Password:        v.GetString("DB_PASSWORD"),
		Name:            v.GetString("DB_NAME"),
		SSLMode:         v.GetString("DB_SSL_MODE"),
		MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: parseDuration(v.GetString("DB_CONN_MAX_LIFETIME"), time.Hour),
		AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		LogQueries:      v.GetBool("DB_LOG_QUERIES"),
	}

	cfg.Cache = CacheConfig{
		UserTTL:  parseDuration(v.GetString("CACHE_USER_TTL"), 15*time.Minute),
		VideoTTL: parseDuration(v.GetString("CACHE_VIDEO_TTL"), 5*time.Minute),
	}

	cfg.Casdoor = CasdoorConfig{
		Endpoint:     v.GetString("CASDOOR_ENDPOINT"),
		ClientID:     v.GetString("CASDOOR_CLIENT_ID"),
		ClientSecret: v.GetString("CASDOOR_CLIENT_SECRET"),
		Cert:         v.GetString("CASDOOR_CERT"),
		Organization: v.GetString("CASDOOR_ORGANIZATION"),
		Application:  v.GetString("CASDOOR_APPLICATION"),
	}

	cfg.Google = GoogleConfig{ClientID: v.GetString("GOOGLE_CLIENT_ID")}

	cfg.Kafka = KafkaConfig{
		Brokers:     splitAndTrim(v.GetString("KAFKA_BROKERS")),
		TopicPrefix: v.GetString("KAFKA_TOPIC_PREFIX"),
	}

	cfg.Meeting = MeetingConfig{
		AppID:        v.GetInt64("MEETING_APP_ID"),
		ServerSecret: v.GetString("MEETING_SERVER_SECRET"),
		BaseURL:      strings.TrimRight(v.GetString("MEETING_BASE_URL"), "/"),
		TokenTTL:     parseDuration(v.GetString("MEETING_TOKEN_TTL"), 2*time.Hour),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	for _, p := range c.AuthProviders {
		switch p {
		case ProviderCasdoor, ProviderGoogle:
		default:
			return fmt.Errorf("unknown auth provider %q", p)
		}
	}
	if c.IsProduction() && c.Meeting.ServerSecret == "" {
		return errors.New("MEETING_SERVER_SECRET is required in production")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ALLOWED_ORIGINS", "*")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "tutoring")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_LOG_QUERIES", false)

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_USER_TTL", "15m")
	v.SetDefault("CACHE_VIDEO_TTL", "5m")

	v.SetDefault("AUTH_PROVIDERS", "casdoor,google")
	v.SetDefault("CASDOOR_ORGANIZATION", "built-in")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC_PREFIX", "tutoring.")

	v.SetDefault("MEETING_APP_ID", 0)
	v.SetDefault("MEETING_SERVER_SECRET", "")
	v.SetDefault("MEETING_BASE_URL", "http://localhost:3000")
	v.SetDefault("MEETING_TOKEN_TTL", "2h")
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
