package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Server defaults.
const (
	DefaultDatabaseURL    = "sqlite://tareas.db"
	DefaultPort           = 3000
	DefaultAllowedOrigins = "*"
	DefaultLogLevel       = "info"
)

// Server holds tareas-server settings.
type Server struct {
	DatabaseURL    string   `mapstructure:"database_url"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"-"`
	LogLevel       string   `mapstructure:"log_level"`
}

// Addr returns the listen address for Port.
func (s *Server) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// LoadServer resolves server settings from, lowest to highest precedence:
// built-in defaults, the optional YAML file at path, a .env file in the
// working directory, and the process environment.
func LoadServer(path string) (*Server, error) {
	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("database_url", DefaultDatabaseURL)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("log_level", DefaultLogLevel)

	for _, key := range []string{"database_url", "port", "allowed_origins", "log_level"} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Server{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.AllowedOrigins = splitOrigins(v.Get("allowed_origins"))

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	for _, o := range cfg.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("invalid allowed origin: %q", o)
		}
	}
	return cfg, nil
}

// splitOrigins accepts either a comma-separated string (env) or a YAML list.
func splitOrigins(raw any) []string {
	var parts []string
	switch v := raw.(type) {
	case string:
		parts = strings.Split(v, ",")
	case []any:
		for _, p := range v {
			parts = append(parts, fmt.Sprint(p))
		}
	case []string:
		parts = v
	}

	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
