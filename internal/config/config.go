package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the OpenSubtitles REST API root.
	DefaultBaseURL = "https://api.opensubtitles.com/api/v1"

	// DefaultUserAgent is sent with every upstream request. OpenSubtitles rejects requests without one.
	DefaultUserAgent = "OpenSubtitlesAuto v1.0.1"

	// DefaultLanguage is used when the caller sends no language hint.
	DefaultLanguage = "he"

	defaultClientTimeout = 30 * time.Second
)

type Config struct {
	OpenSubtitles struct {
		APIKey    string `mapstructure:"api_key"`
		BaseURL   string `mapstructure:"base_url"`
		UserAgent string `mapstructure:"user_agent"`
	} `mapstructure:"opensubtitles"`
	DefaultLanguage       string `mapstructure:"default_language"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s"
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	GRPC struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"grpc"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
	LogLevel string `mapstructure:"log_level"`
}

var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:     os.Stdout,
	NoColor: false,
}).With().Timestamp().Logger()

// Load reads configuration from an optional YAML file and the environment.
// An empty configFile searches for config.yaml in "." and "./config"; a missing
// file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variable support
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain names used by existing deployments
	_ = v.BindEnv("opensubtitles.api_key", "APP_OPENSUBTITLES_API_KEY", "OPENSUBTITLES_API_KEY")
	_ = v.BindEnv("server.port", "APP_SERVER_PORT", "PORT")
	_ = v.BindEnv("log_level", "APP_LOG_LEVEL", "LOG_LEVEL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.OpenSubtitles.UserAgent == "" {
		cfg.OpenSubtitles.UserAgent = DefaultUserAgent
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = DefaultLanguage
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("opensubtitles.api_key", "")
	v.SetDefault("opensubtitles.base_url", DefaultBaseURL)
	v.SetDefault("opensubtitles.user_agent", DefaultUserAgent)
	v.SetDefault("default_language", DefaultLanguage)
	v.SetDefault("client_timeout", defaultClientTimeout.String())
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("grpc.enabled", false)
	v.SetDefault("grpc.port", 50051)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
	v.SetDefault("log_level", "info")
}

// Validate checks the values that would otherwise fail late at listen time.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.GRPC.Enabled && (c.GRPC.Port <= 0 || c.GRPC.Port > 65535) {
		return fmt.Errorf("invalid grpc port %d", c.GRPC.Port)
	}
	if c.Metrics.Enabled && (c.Metrics.Port < 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port %d", c.Metrics.Port)
	}
	return nil
}

// Timeout returns the upstream HTTP client timeout, falling back to 30s on an invalid value.
func (c *Config) Timeout() time.Duration {
	if c.ClientTimeout == "" {
		return defaultClientTimeout
	}
	timeout, err := time.ParseDuration(c.ClientTimeout)
	if err != nil || timeout <= 0 {
		logger.Warn().Err(err).Str("timeout", c.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		return defaultClientTimeout
	}
	return timeout
}

// ConfigureLogger applies the configured level to the shared logger.
func ConfigureLogger(levelName string) zerolog.Logger {
	level := zerolog.InfoLevel // default
	if levelName != "" {
		if parsedLevel, err := zerolog.ParseLevel(levelName); err == nil && parsedLevel != zerolog.NoLevel {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", levelName).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	return logger
}

func GetLogger() zerolog.Logger {
	return logger
}
