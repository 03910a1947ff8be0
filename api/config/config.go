package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`

	// TrustedProxies lists the addresses allowed to set X-Forwarded-For.
	// Empty means the socket address is the client IP.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	URL             string `mapstructure:"url"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"sslmode"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the postgres connection string. An explicit URL wins over
// the individual parts.
func (d *DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Database, d.Password, d.SSLMode)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	SessionSecret   string `mapstructure:"session_secret"`
	SessionTTLHours int    `mapstructure:"session_ttl_hours"`
	CookieSecure    bool   `mapstructure:"cookie_secure"`
	CSRF            bool   `mapstructure:"csrf"`
	BcryptCost      int    `mapstructure:"bcrypt_cost"`
	LoginRate       int    `mapstructure:"login_rate"`
	LoginBurst      int    `mapstructure:"login_burst"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis endpoint has been configured at all.
func (r *RedisConfig) Enabled() bool {
	return r.URL != "" || r.Addr != ""
}

type MediaConfig struct {
	Backend   string `mapstructure:"backend"`
	Dir       string `mapstructure:"dir"`
	URLPrefix string `mapstructure:"url_prefix"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	MaxBytes  int64  `mapstructure:"max_bytes"`
}

type FeedConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// DefaultSessionSecret is the placeholder shipped with the defaults. Release
// mode refuses to sign sessions with it.
const DefaultSessionSecret = "change-me-in-production"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Media    MediaConfig    `mapstructure:"media"`
	Feed     FeedConfig     `mapstructure:"feed"`
}

// Load reads configs/config.yaml when present, then applies LITREVIEW_*
// environment overrides on top of the defaults. A .env file in the working
// directory is honoured outside production.
func Load(path string) (*Config, error) {
	if os.Getenv("LITREVIEW_SERVER_MODE") != "release" {
		_ = godotenv.Load()
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in defaults without consulting files or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("LITREVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", 10)
	v.SetDefault("server.trusted_proxies", []string{})

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "litreview")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "litreview")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "litreview.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.session_secret", DefaultSessionSecret)
	v.SetDefault("auth.session_ttl_hours", 336)
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("auth.csrf", true)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.login_rate", 5)
	v.SetDefault("auth.login_burst", 10)

	// Redis defaults (disabled)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Media defaults
	v.SetDefault("media.backend", "disk")
	v.SetDefault("media.dir", "media")
	v.SetDefault("media.url_prefix", "/media")
	v.SetDefault("media.bucket", "")
	v.SetDefault("media.region", "us-east-1")
	v.SetDefault("media.prefix", "tickets/")
	v.SetDefault("media.endpoint", "")
	v.SetDefault("media.max_bytes", 5<<20)

	v.SetDefault("feed.page_size", 10)
}
