package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourcePostgres = "postgres"
	SourceHTTP     = "http"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type RateSource struct {
	Kind        string `mapstructure:"kind"`
	UpstreamURL string `mapstructure:"upstream_url"`
}

type Synchronizer struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

func (s Synchronizer) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

type Pricing struct {
	Locale      string `mapstructure:"locale"`
	LocalSymbol string `mapstructure:"local_symbol"`
	USDLocale   string `mapstructure:"usd_locale"`
	USDSymbol   string `mapstructure:"usd_symbol"`
}

type ProjectionCache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Kafka struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Admin struct {
	Token string `mapstructure:"token"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	DbServer        DbServer        `mapstructure:"db_server"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	RateSource      RateSource      `mapstructure:"rate_source"`
	Synchronizer    Synchronizer    `mapstructure:"synchronizer"`
	Pricing         Pricing         `mapstructure:"pricing"`
	ProjectionCache ProjectionCache `mapstructure:"projection_cache"`
	Kafka           Kafka           `mapstructure:"kafka"`
	Admin           Admin           `mapstructure:"admin"`
	Logging         Logging         `mapstructure:"logging"`
}

func (cfg *AppConfig) Validate() error {
	switch cfg.RateSource.Kind {
	case SourcePostgres:
	case SourceHTTP:
		if cfg.RateSource.UpstreamURL == "" {
			return errors.New("rate_source.upstream_url is required for the http source")
		}
	default:
		return fmt.Errorf("unknown rate_source.kind %q", cfg.RateSource.Kind)
	}
	if cfg.Kafka.Enabled && (len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "") {
		return errors.New("kafka.brokers and kafka.topic are required when kafka is enabled")
	}
	if cfg.ProjectionCache.MaxItems <= 0 {
		return errors.New("projection_cache.max_items must be positive")
	}
	return nil
}

// Init reads config.yaml (or CONFIG_PATH) on top of defaults, with env overrides.
// A missing .env file is fine; a malformed one is not.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load(os.Getenv("CONFIG_PATH"))
}

func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if path == "" {
		path = "config.yaml"
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.RateSource.Kind = strings.ToLower(strings.TrimSpace(cfg.RateSource.Kind))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("rate_source.kind", SourcePostgres)
	v.SetDefault("synchronizer.interval_seconds", 30)
	v.SetDefault("pricing.locale", "es-VE")
	v.SetDefault("pricing.local_symbol", "Bs.")
	v.SetDefault("pricing.usd_locale", "en-US")
	v.SetDefault("pricing.usd_symbol", "$")
	v.SetDefault("projection_cache.max_items", 10000)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.topic", "storefx.exchange-rate.changed")
	v.SetDefault("logging.level", "info")
}

func bindEnv(v *viper.Viper) {
	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rate source and polling
	_ = v.BindEnv("rate_source.kind", "RATE_SOURCE_KIND")
	_ = v.BindEnv("rate_source.upstream_url", "RATE_SOURCE_UPSTREAM_URL")
	_ = v.BindEnv("synchronizer.interval_seconds", "SYNC_INTERVAL_SECONDS")

	// kafka
	_ = v.BindEnv("kafka.enabled", "KAFKA_ENABLED")
	_ = v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	_ = v.BindEnv("kafka.topic", "KAFKA_TOPIC")

	// secrets
	_ = v.BindEnv("admin.token", "ADMIN_TOKEN")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
}
