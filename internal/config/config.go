package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"budget-app-go/pkg/logger"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort     string
	Env          string
	LogLevel     string
	LogFormat    string
	Timezone     string
	UpcomingDays int
	DB           DBConfig
	Session      SessionConfig
	HTTP         HTTPConfig
	Demo         DemoConfig
	Cache        CacheConfig
	AMQP         AMQPConfig
}

// HTTPConfig holds server timeouts. Zero read, write and idle timeouts
// mean no limit.
type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type DemoConfig struct {
	Enabled  bool
	Username string
	Password string
	CSVPath  string
}

type CacheConfig struct {
	CategoriesTTL time.Duration
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

var defaults = map[string]any{
	"HTTP_PORT":             "8080",
	"HTTP_READ_TIMEOUT":     15 * time.Second,
	"HTTP_WRITE_TIMEOUT":    35 * time.Second,
	"HTTP_IDLE_TIMEOUT":     2 * time.Minute,
	"HTTP_SHUTDOWN_TIMEOUT": 10 * time.Second,
	"ENV":                   "development",
	"LOG_LEVEL":             "",
	"LOG_FORMAT":            "json",
	"APP_TIMEZONE":          "UTC",
	"UPCOMING_DAYS":         30,
	"DB_DRIVER":             DriverPostgres,
	"DB_DSN":                "",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "postgres",
	"DB_NAME":               "budget_app",
	"DB_SSLMODE":            "disable",
	"DB_TIMEZONE":           "UTC",
	"SQLITE_PATH":           "budget.db",
	"DB_MAX_OPEN_CONNS":     10,
	"DB_MAX_IDLE_CONNS":     5,
	"DB_CONN_MAX_LIFETIME":  30 * time.Minute,
	"SESSION_SECRET":        "",
	"SESSION_TTL":           14 * 24 * time.Hour,
	"SESSION_COOKIE_NAME":   "budget_session",
	"SESSION_COOKIE_SECURE": false,
	"DEMO_ENABLED":          true,
	"DEMO_USERNAME":         "demo",
	"DEMO_PASSWORD":         "demo-password",
	"DEMO_CSV_PATH":         "",
	"CATEGORY_CACHE_TTL":    time.Minute,
	"AMQP_URL":              "",
	"AMQP_EXCHANGE":         "budget.events",
}

const devSessionSecret = "dev-insecure-session-secret"

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := fromViper(v)
	if cfg.Session.Secret == "" && cfg.Env == "development" {
		log.Warn("config: SESSION_SECRET not set, using development secret")
		cfg.Session.Secret = devSessionSecret
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		HTTPPort:     v.GetString("HTTP_PORT"),
		Env:          strings.ToLower(v.GetString("ENV")),
		LogLevel:     v.GetString("LOG_LEVEL"),
		LogFormat:    v.GetString("LOG_FORMAT"),
		Timezone:     v.GetString("APP_TIMEZONE"),
		UpcomingDays: v.GetInt("UPCOMING_DAYS"),
		HTTP: HTTPConfig{
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("HTTP_IDLE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:             v.GetString("DB_DSN"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			TimeZone:        v.GetString("DB_TIMEZONE"),
			SQLitePath:      v.GetString("SQLITE_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			TTL:          v.GetDuration("SESSION_TTL"),
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		},
		Demo: DemoConfig{
			Enabled:  v.GetBool("DEMO_ENABLED"),
			Username: v.GetString("DEMO_USERNAME"),
			Password: v.GetString("DEMO_PASSWORD"),
			CSVPath:  v.GetString("DEMO_CSV_PATH"),
		},
		Cache: CacheConfig{
			CategoriesTTL: v.GetDuration("CATEGORY_CACHE_TTL"),
		},
		AMQP: AMQPConfig{
			URL:      v.GetString("AMQP_URL"),
			Exchange: v.GetString("AMQP_EXCHANGE"),
		},
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.HTTPPort) == "" {
		problems = append(problems, "HTTP_PORT is required")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 || c.HTTP.IdleTimeout < 0 {
		problems = append(problems, "HTTP timeouts must not be negative")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		problems = append(problems, "HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	switch c.DB.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if strings.TrimSpace(c.DB.SQLitePath) == "" {
			problems = append(problems, "SQLITE_PATH is required for the sqlite driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER %q is not supported", c.DB.Driver))
	}
	if c.Session.Secret == "" {
		problems = append(problems, "SESSION_SECRET is required")
	}
	if c.Session.TTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}
	if c.Demo.Enabled && strings.TrimSpace(c.Demo.Username) == "" {
		problems = append(problems, "DEMO_USERNAME is required when DEMO_ENABLED is set")
	}
	if c.UpcomingDays < 0 {
		problems = append(problems, "UPCOMING_DAYS must not be negative")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("APP_TIMEZONE %q is invalid", c.Timezone))
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
