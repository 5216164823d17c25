package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envFile = "configs/.env"

// DatabaseConfig holds the connection parts used when DATABASE_URL is unset
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig enables dashboard caching when Addr is set
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Config represents the application configuration
type Config struct {
	Port         int            `yaml:"port"`
	DatabaseURL  string         `yaml:"database_url"`
	Database     DatabaseConfig `yaml:"database"`
	Redis        RedisConfig    `yaml:"redis"`
	CacheTTL     time.Duration  `yaml:"cache_ttl"`
	CORSOrigins  []string       `yaml:"cors_origins"`
	AuditLogCap  int            `yaml:"audit_log_cap"`
	LeadTimeDays int            `yaml:"lead_time_days"`
	Debug        bool           `yaml:"debug"`
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		Port: 8080,
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "postgres",
			SSLMode:  "disable",
		},
		CacheTTL:     30 * time.Second,
		CORSOrigins:  []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AuditLogCap:  500,
		LeadTimeDays: 7,
		Debug:        true,
	}
}

// Load layers configs/.env, an optional YAML file named by CONFIG_FILE and
// environment variables, in increasing precedence.
func Load() (Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file found or error loading it", envFile)
	}

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	if err := setInt(&cfg.Port, "PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&cfg.AuditLogCap, "AUDIT_LOG_CAP"); err != nil {
		return err
	}
	if err := setInt(&cfg.LeadTimeDays, "LEAD_TIME_DAYS"); err != nil {
		return err
	}

	if raw := strings.TrimSpace(os.Getenv("CACHE_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL: %q", raw)
		}
		cfg.CacheTTL = ttl
	}
	if raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); raw != "" {
		cfg.CORSOrigins = splitList(raw)
	}
	if os.Getenv("GIN_MODE") == "release" {
		cfg.Debug = false
	}
	return nil
}

// Validate rejects values the server cannot run with
func (c Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.AuditLogCap < 1 {
		return fmt.Errorf("AUDIT_LOG_CAP must be at least 1, got %d", c.AuditLogCap)
	}
	if c.LeadTimeDays < 0 {
		return fmt.Errorf("LEAD_TIME_DAYS must not be negative, got %d", c.LeadTimeDays)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL built from the parts
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	d := c.Database
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host,
		Path:   "/" + d.Name,
	}
	if d.Port != "" {
		u.Host = net.JoinHostPort(d.Host, d.Port)
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	*dst = v
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
