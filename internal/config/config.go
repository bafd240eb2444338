package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/http-observer/internal/constants"
	"github.com/oshokin/http-observer/internal/logger"
	"github.com/oshokin/http-observer/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// Sink selects where observed entries go: "logger" or "console".
	Sink string `mapstructure:"sink" yaml:"sink"`
	// SinkLevel is the log level observed entries are written at by the logger sink.
	SinkLevel string `mapstructure:"sink_level" yaml:"sink_level"`
	// MissingResponse controls the error hook when a failure has no response: "skip" or "marker".
	MissingResponse string `mapstructure:"missing_response" yaml:"missing_response"`
	// MaxBodyLength limits captured request and response bodies (e.g., "64KB", "1 MB").
	MaxBodyLength string `mapstructure:"max_body_length" yaml:"max_body_length"`
	// RedactedHeaders lists headers whose values are masked in observed descriptors.
	RedactedHeaders []string `mapstructure:"redacted_headers" yaml:"redacted_headers"`
	// UserAgent is injected into requests that carry none.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// Timeout is the overall timeout of a single request (e.g., "30s").
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
	// BaseURL is prepended to relative request URLs.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-" yaml:"-"`
	// ParsedSinkLevel is the parsed level of the logger sink.
	ParsedSinkLevel zapcore.Level `mapstructure:"-" yaml:"-"`
	// ParsedMaxBodyLength is the parsed body capture limit in bytes.
	ParsedMaxBodyLength int64 `mapstructure:"-" yaml:"-"`
	// ParsedTimeout is the parsed request timeout.
	ParsedTimeout time.Duration `mapstructure:"-" yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".http-observer.yaml"

	// DefaultEnvFilename is the optional dotenv file loaded before the configuration.
	DefaultEnvFilename = ".env"

	// EnvPrefix prefixes environment variables overriding configuration keys,
	// e.g. HTTP_OBSERVER_LOG_LEVEL.
	EnvPrefix = "HTTP_OBSERVER"

	// DefaultLogLevel is the default application log level.
	DefaultLogLevel = "info"

	// DefaultSink is the default sink kind.
	DefaultSink = "logger"

	// DefaultSinkLevel is the default level of the logger sink.
	DefaultSinkLevel = "info"

	// DefaultMissingResponse is the default behaviour for failures without a response.
	DefaultMissingResponse = "skip"

	// DefaultMaxBodyLength is the default body capture limit.
	DefaultMaxBodyLength = "64KB"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = "60s"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownSinkLevel indicates that the sink level is not recognized.
	ErrUnknownSinkLevel = errors.New("unknown sink level")
	// ErrInvalidMaxBodyLength indicates that the body capture limit is invalid.
	ErrInvalidMaxBodyLength = errors.New("max_body_length must be positive")
	// ErrInvalidTimeout indicates that the request timeout is invalid.
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrConfigFileExists indicates that a configuration file would be overwritten.
	ErrConfigFileExists = errors.New("configuration file already exists")
)

// DefaultConfig returns a configuration populated with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		Sink:            DefaultSink,
		SinkLevel:       DefaultSinkLevel,
		MissingResponse: DefaultMissingResponse,
		MaxBodyLength:   DefaultMaxBodyLength,
		RedactedHeaders: []string{"Authorization", "Cookie", "Set-Cookie", "Proxy-Authorization"},
		Timeout:         DefaultTimeout,
	}
}

// LoadConfig loads configuration settings from a YAML file, environment variables and an optional .env file.
// A missing file is only an error when configFilename was given explicitly.
func LoadConfig(configFilename string) (*Config, error) {
	if err := loadEnvFile(DefaultEnvFilename); err != nil {
		return nil, err
	}

	v := newViper()

	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		if isExplicit || !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	parsedSinkLevel, isSinkLevelCorrect := logger.ParseLogLevel(cfg.SinkLevel)
	if !isSinkLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownSinkLevel, cfg.SinkLevel)
	}

	cfg.ParsedSinkLevel = parsedSinkLevel

	maxBodyLength := strings.TrimSpace(cfg.MaxBodyLength)
	if maxBodyLength == "" {
		maxBodyLength = DefaultMaxBodyLength
	}

	parsedMaxBodyLength, err := humanize.ParseBytes(maxBodyLength)
	if err != nil {
		return fmt.Errorf("failed to parse max body length: %w", err)
	}

	if parsedMaxBodyLength == 0 {
		return ErrInvalidMaxBodyLength
	}

	cfg.ParsedMaxBodyLength = utils.SafeUint64ToInt64(parsedMaxBodyLength)

	timeout := strings.TrimSpace(cfg.Timeout)
	if timeout == "" {
		timeout = DefaultTimeout
	}

	cfg.ParsedTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return fmt.Errorf("failed to parse timeout: %w", err)
	}

	if cfg.ParsedTimeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// SaveConfig writes cfg as YAML to configFilename. An existing file is only replaced when overwrite is set.
func SaveConfig(cfg *Config, configFilename string, overwrite bool) error {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	exists, err := utils.IsFileExist(configFilename)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if exists && !overwrite {
		return fmt.Errorf("%w: %s", ErrConfigFileExists, configFilename)
	}

	if dir := filepath.Dir(configFilename); dir != "." {
		if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFilename, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// newViper creates a viper instance seeded with defaults and environment overrides.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("sink", defaults.Sink)
	v.SetDefault("sink_level", defaults.SinkLevel)
	v.SetDefault("missing_response", defaults.MissingResponse)
	v.SetDefault("max_body_length", defaults.MaxBodyLength)
	v.SetDefault("redacted_headers", defaults.RedactedHeaders)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("base_url", defaults.BaseURL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// loadEnvFile loads variables from a dotenv file without overriding the environment.
// A missing file is not an error.
func loadEnvFile(filename string) error {
	exists, err := utils.IsFileExist(filename)
	if err != nil || !exists {
		return err
	}

	if err = godotenv.Load(filename); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
