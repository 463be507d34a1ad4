package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Security  SecurityConfig
	Dashboard DashboardConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

type DashboardConfig struct {
	// ResponseDelay simulates backend latency on the JSON endpoints. Zero disables it.
	ResponseDelay time.Duration
	// LiveInterval is the push period of the live SSE stream.
	LiveInterval time.Duration
}

var defaults = map[string]any{
	"server.host":             "localhost",
	"server.port":             8084,
	"server.read_timeout":     10 * time.Second,
	"server.write_timeout":    10 * time.Second,
	"server.idle_timeout":     60 * time.Second,
	"server.shutdown_timeout": 30 * time.Second,

	"log.level":  "info",
	"log.format": "json",

	"security.rate_limit_enabled": true,
	"security.rate_limit_rps":     100,
	"security.rate_limit_burst":   10,
	"security.allowed_origins":    "http://localhost:8084",
	"security.trusted_proxies":    "127.0.0.1",

	"dashboard.response_delay": time.Duration(0),
	"sse.live_interval":        5 * time.Second,
}

// Load reads configuration from the environment, optionally layered over
// the file named by CONFIG_FILE. Keys map to variables by upper-casing and
// replacing dots with underscores (server.port -> SERVER_PORT).
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", file, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Logger: LoggerConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Security: SecurityConfig{
			EnableRateLimit: v.GetBool("security.rate_limit_enabled"),
			RateLimitRPS:    v.GetInt("security.rate_limit_rps"),
			RateLimitBurst:  v.GetInt("security.rate_limit_burst"),
			AllowedOrigins:  splitList(v.GetString("security.allowed_origins")),
			TrustedProxies:  splitList(v.GetString("security.trusted_proxies")),
		},
		Dashboard: DashboardConfig{
			ResponseDelay: v.GetDuration("dashboard.response_delay"),
			LiveInterval:  v.GetDuration("sse.live_interval"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	if c.Dashboard.ResponseDelay < 0 {
		return fmt.Errorf("response delay cannot be negative")
	}

	if c.Dashboard.LiveInterval < 100*time.Millisecond {
		return fmt.Errorf("live interval must be at least 100ms, got %s", c.Dashboard.LiveInterval)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
