package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverYAML   = "yaml"

	defaultConfigFile = "./pomodoro.yaml"
)

type Config struct {
	Port          string
	DBPath        string
	StoreDriver   string
	StorePath     string
	MigrationsDir string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
	AppEnv        string

	DefaultWorkMinutes  int
	DefaultBreakMinutes int
	ToneEnabled         bool
	TickInterval        time.Duration
}

// Strict reports whether invariant violations should panic.
func (c Config) Strict() bool {
	return c.AppEnv == "development"
}

// fileConfig mirrors the optional YAML config file. Zero values leave the
// defaults in place.
type fileConfig struct {
	Port                string   `mapstructure:"port"`
	DBPath              string   `mapstructure:"db_path"`
	StoreDriver         string   `mapstructure:"store_driver"`
	StorePath           string   `mapstructure:"store_path"`
	MigrationsDir       string   `mapstructure:"migrations_dir"`
	JWTSecret           string   `mapstructure:"jwt_secret"`
	TokenTTLHours       int      `mapstructure:"token_ttl_hours"`
	CORSOrigins         []string `mapstructure:"cors_origins"`
	AppEnv              string   `mapstructure:"app_env"`
	DefaultWorkMinutes  int      `mapstructure:"default_work_minutes"`
	DefaultBreakMinutes int      `mapstructure:"default_break_minutes"`
	ToneEnabled         *bool    `mapstructure:"tone_enabled"`
	TickIntervalMS      int      `mapstructure:"tick_interval_ms"`
}

func Default() Config {
	return Config{
		Port:                "8080",
		DBPath:              "./data/pomodoro.db",
		StoreDriver:         DriverSQLite,
		StorePath:           "./data/pomodoro.yaml",
		JWTSecret:           "change-this-secret",
		TokenTTL:            72 * time.Hour,
		CORSOrigins:         []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AppEnv:              "production",
		DefaultWorkMinutes:  25,
		DefaultBreakMinutes: 5,
		ToneEnabled:         true,
		TickInterval:        time.Second,
	}
}

// Load builds the configuration from defaults, then the config file named by
// CONFIG_FILE (or ./pomodoro.yaml when present), then environment variables.
func Load() (Config, error) {
	cfg := Default()

	path, explicit := os.LookupEnv("CONFIG_FILE")
	if !explicit || path == "" {
		path = defaultConfigFile
		explicit = false
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !os.IsNotExist(err) {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.StoreDriver != DriverSQLite && cfg.StoreDriver != DriverYAML {
		return cfg, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var file fileConfig
	if err := v.Unmarshal(&file); err != nil {
		return err
	}
	file.apply(cfg)
	return nil
}

func (f fileConfig) apply(cfg *Config) {
	setString(&cfg.Port, f.Port)
	setString(&cfg.DBPath, f.DBPath)
	setString(&cfg.StoreDriver, f.StoreDriver)
	setString(&cfg.StorePath, f.StorePath)
	setString(&cfg.MigrationsDir, f.MigrationsDir)
	setString(&cfg.JWTSecret, f.JWTSecret)
	setString(&cfg.AppEnv, f.AppEnv)
	if f.TokenTTLHours > 0 {
		cfg.TokenTTL = time.Duration(f.TokenTTLHours) * time.Hour
	}
	if len(f.CORSOrigins) > 0 {
		cfg.CORSOrigins = f.CORSOrigins
	}
	if f.DefaultWorkMinutes > 0 {
		cfg.DefaultWorkMinutes = f.DefaultWorkMinutes
	}
	if f.DefaultBreakMinutes > 0 {
		cfg.DefaultBreakMinutes = f.DefaultBreakMinutes
	}
	if f.ToneEnabled != nil {
		cfg.ToneEnabled = *f.ToneEnabled
	}
	if f.TickIntervalMS > 0 {
		cfg.TickInterval = time.Duration(f.TickIntervalMS) * time.Millisecond
	}
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", cfg.StoreDriver))
	cfg.StorePath = getEnv("STORE_PATH", cfg.StorePath)
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", cfg.MigrationsDir)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = time.Duration(getEnvInt("TOKEN_TTL_HOURS", int(cfg.TokenTTL/time.Hour))) * time.Hour
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.DefaultWorkMinutes = getEnvInt("DEFAULT_WORK_MINUTES", cfg.DefaultWorkMinutes)
	cfg.DefaultBreakMinutes = getEnvInt("DEFAULT_BREAK_MINUTES", cfg.DefaultBreakMinutes)
	cfg.ToneEnabled = getEnvBool("TONE_ENABLED", cfg.ToneEnabled)
	cfg.TickInterval = time.Duration(getEnvInt("TICK_INTERVAL_MS", int(cfg.TickInterval/time.Millisecond))) * time.Millisecond
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
