package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/http-observer/internal/constants"
)

// TestDefaultConfig tests the DefaultConfig function.
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultSink, cfg.Sink)
	assert.Equal(t, DefaultSinkLevel, cfg.SinkLevel)
	assert.Equal(t, DefaultMissingResponse, cfg.MissingResponse)
	assert.Equal(t, DefaultMaxBodyLength, cfg.MaxBodyLength)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Contains(t, cfg.RedactedHeaders, "Authorization")

	require.NoError(t, ValidateConfig(cfg))
}

// TestLoadConfig tests the LoadConfig function.
func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		configFilename string
		configContent  string
		expectError    bool
		expectedError  string
	}{
		{
			name:           "valid config file",
			configFilename: "valid_config.yaml",
			configContent: `
log_level: "debug"
sink: "console"
sink_level: "info"
missing_response: "marker"
max_body_length: "1 MB"
redacted_headers:
  - "X-Api-Key"
user_agent: "tester/1.0"
timeout: "5s"
base_url: "https://api.example.com"
`,
			expectError: false,
		},
		{
			name:           "partial config file keeps defaults",
			configFilename: "partial_config.yaml",
			configContent: `
log_level: "debug"
sink: "console"
missing_response: "marker"
max_body_length: "1 MB"
timeout: "5s"
`,
			expectError: false,
		},
		{
			name:           "non-existent file",
			configFilename: "non_existent.yaml",
			expectError:    true,
			expectedError:  "failed to read config from file",
		},
		{
			name:           "invalid yaml",
			configFilename: "invalid.yaml",
			configContent: `
invalid: yaml: content: [unclosed
`,
			expectError:   true,
			expectedError: "failed to read config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), tt.configFilename)

			if tt.configContent != "" {
				err := os.WriteFile(configPath, []byte(tt.configContent), constants.DefaultFilePermissions)
				require.NoError(t, err)
			}

			cfg, err := LoadConfig(configPath)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, "console", cfg.Sink)
			assert.Equal(t, "info", cfg.SinkLevel)
			assert.Equal(t, "marker", cfg.MissingResponse)
			assert.NotEmpty(t, cfg.RedactedHeaders)

			require.NoError(t, ValidateConfig(cfg))
			assert.Equal(t, zapcore.DebugLevel, cfg.ParsedLogLevel)
			assert.Equal(t, int64(1_000_000), cfg.ParsedMaxBodyLength)
			assert.Equal(t, 5*time.Second, cfg.ParsedTimeout)
		})
	}
}

// TestLoadConfig_EnvironmentOverride tests that prefixed environment variables override file values.
func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	// t.Setenv is incompatible with t.Parallel.
	t.Setenv("HTTP_OBSERVER_SINK", "console")
	t.Setenv("HTTP_OBSERVER_TIMEOUT", "2s")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(configPath, []byte("sink: \"logger\"\ntimeout: \"10s\"\n"), constants.DefaultFilePermissions)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Sink)
	assert.Equal(t, "2s", cfg.Timeout)
}

// TestValidateConfig tests the ValidateConfig function.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		modify      func(cfg *Config)
		expectedErr error
		errorMsg    string
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name: "empty body length and timeout fall back to defaults",
			modify: func(cfg *Config) {
				cfg.MaxBodyLength = ""
				cfg.Timeout = ""
			},
		},
		{
			name:        "unknown log level",
			modify:      func(cfg *Config) { cfg.LogLevel = "verbose" },
			expectedErr: ErrUnknownLogLevel,
		},
		{
			name:        "unknown sink level",
			modify:      func(cfg *Config) { cfg.SinkLevel = "loud" },
			expectedErr: ErrUnknownSinkLevel,
		},
		{
			name:     "invalid body length",
			modify:   func(cfg *Config) { cfg.MaxBodyLength = "lots" },
			errorMsg: "failed to parse max body length",
		},
		{
			name:        "zero body length",
			modify:      func(cfg *Config) { cfg.MaxBodyLength = "0" },
			expectedErr: ErrInvalidMaxBodyLength,
		},
		{
			name:     "invalid timeout",
			modify:   func(cfg *Config) { cfg.Timeout = "soon" },
			errorMsg: "failed to parse timeout",
		},
		{
			name:        "negative timeout",
			modify:      func(cfg *Config) { cfg.Timeout = "-1s" },
			expectedErr: ErrInvalidTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)

			err := ValidateConfig(cfg)

			switch {
			case tt.expectedErr != nil:
				require.ErrorIs(t, err, tt.expectedErr)
			case tt.errorMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(64_000), cfg.ParsedMaxBodyLength)
				assert.Equal(t, 60*time.Second, cfg.ParsedTimeout)
			}
		})
	}
}

// TestSaveConfig tests that SaveConfig writes a loadable file and refuses to overwrite by default.
func TestSaveConfig(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), DefaultConfigFilename)

	original := DefaultConfig()
	original.Sink = "console"
	original.BaseURL = "https://api.example.com"

	require.NoError(t, SaveConfig(original, configPath, false))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "console", loaded.Sink)
	assert.Equal(t, "https://api.example.com", loaded.BaseURL)
	assert.Equal(t, original.RedactedHeaders, loaded.RedactedHeaders)

	err = SaveConfig(original, configPath, false)
	require.ErrorIs(t, err, ErrConfigFileExists)

	require.NoError(t, SaveConfig(original, configPath, true))
}

// TestSaveConfig_CreatesDirectory tests that SaveConfig creates missing parent directories.
func TestSaveConfig_CreatesDirectory(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "nested", "dir", DefaultConfigFilename)

	require.NoError(t, SaveConfig(DefaultConfig(), configPath, false))

	exists, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.False(t, exists.IsDir())
}
