package npclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/srediag/plugin-npclient/internal/debug"
	"github.com/srediag/plugin-npclient/pkg/freetrack"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "NPCLIENT"

// ErrInvalidConfig wraps every VerifyConfig failure.
var ErrInvalidConfig = errors.New("invalid npclient config")

// Config is used to tune the bridge.
type Config struct {
	// MappingName is the shared segment the producer publishes into.
	MappingName string `envconfig:"SHM_NAME" default:"FT_SharedMem"`
	// MutexName is the synchronization object touched before mapping.
	MutexName string `envconfig:"MUTEX_NAME" default:"FT_Mutext"`
	// LogLevel overrides the diagnostic level when >= 0.
	LogLevel int `envconfig:"LOG_LEVEL" default:"-1"`
	// LogFile appends diagnostics to a file instead of stdout.
	LogFile string `envconfig:"LOG_FILE"`
}

// DefaultConfig is used to create a default config.
func DefaultConfig() *Config {
	return &Config{
		MappingName: freetrack.DefaultName,
		MutexName:   freetrack.DefaultLockName,
		LogLevel:    -1,
	}
}

// LoadConfig reads NPCLIENT_* environment variables over the defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := VerifyConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// VerifyConfig is used to verify the sanity of configuration.
func VerifyConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if config.MappingName == "" {
		return fmt.Errorf("%w: MappingName is empty", ErrInvalidConfig)
	}
	for _, name := range []string{config.MappingName, config.MutexName} {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%w: name %q must not contain path separators", ErrInvalidConfig, name)
		}
	}
	if config.LogLevel < -1 || config.LogLevel > debug.LevelNoPrint {
		return fmt.Errorf("%w: LogLevel %d out of range [-1, %d]", ErrInvalidConfig, config.LogLevel, debug.LevelNoPrint)
	}
	return nil
}
