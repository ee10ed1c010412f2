package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/warp/accrual-engine/generic"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ACCRUAL"

// Config holds the server configuration loaded from environment variables or
// a .env file.
//
// Example ENV equivalent:
//
//	ACCRUAL_PORT=8080
//	ACCRUAL_DB_PATH=accrual.db
//	ACCRUAL_RANGE_MIN=1900-01-01
//	ACCRUAL_RANGE_MAX=2199-12-31
//	ACCRUAL_CORS_ORIGINS=http://localhost:5173,http://localhost:8080
//	ACCRUAL_LOG_LEVEL=debug
//	ACCRUAL_LOG_PRETTY=true
//
// Logging reads the prefixed keys too. logger.Init's unprefixed LOG_LEVEL and
// LOG_PRETTY only apply to programs that never load this configuration.
type Config struct {
	Server ServerConfig
	DBPath string        // SQLite path, ":memory:" for an in-memory database
	Range  generic.Range // representable date domain for rolling scans
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int
	CORSOrigins []string
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// BootstrapLog reads only the ACCRUAL_LOG_LEVEL and ACCRUAL_LOG_PRETTY
// environment variables; .env is left to Load. The server uses it to log
// before Load has succeeded, including when Load itself fails.
func BootstrapLog() LogConfig {
	v := viper.New()
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Pretty: v.GetBool("LOG_PRETTY"),
	}
}

// Load reads configuration from ./.env (if present) and the environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom reads configuration from envFile (if present) and the environment.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from envFile, keyed without the prefix (PORT=9090).
//  3. Environment variables, keyed with the prefix (ACCRUAL_PORT=9090).
func LoadFrom(envFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "accrual.db")
	v.SetDefault("RANGE_MIN", generic.MinDate.String())
	v.SetDefault("RANGE_MAX", generic.MaxDate.String())
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		_ = v.ReadInConfig() // ignore error if no .env
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port:        v.GetInt("PORT"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		DBPath: v.GetString("DB_PATH"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}

	r, err := ParseRange(v.GetString("RANGE_MIN"), v.GetString("RANGE_MAX"))
	if err != nil {
		return Config{}, err
	}
	cfg.Range = r

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseRange parses a representable date range from two YYYY-MM-DD bounds.
func ParseRange(minDate, maxDate string) (generic.Range, error) {
	lo, err := generic.ParseDate(minDate)
	if err != nil {
		return generic.Range{}, fmt.Errorf("RANGE_MIN: %w", err)
	}
	hi, err := generic.ParseDate(maxDate)
	if err != nil {
		return generic.Range{}, fmt.Errorf("RANGE_MAX: %w", err)
	}
	r := generic.Range{Min: lo, Max: hi}
	if err := r.Validate(); err != nil {
		return generic.Range{}, err
	}
	return r, nil
}

// Validate reports missing or out-of-range settings.
func (c Config) Validate() error {
	var problems []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d out of range", c.Server.Port))
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return c.Range.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
