package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"scheduling-simulator/internal/logger"
)

// EnvPrefix prefixes environment overrides, e.g. SCHEDSIM_PORT.
const EnvPrefix = "SCHEDSIM"

type SchedulerConfig struct {
	Port                  int
	RoundRobinTimeQuantum int
	MaxProcesses          int
	MemorySimulation      bool
	Log                   logger.Config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", 4)
	v.SetDefault("registry.max_processes", 100)
	v.SetDefault("memory_simulation", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file.path", "")
	v.SetDefault("log.file.max_size_mb", logger.DefaultMaxSizeMB)
	v.SetDefault("log.file.max_backups", logger.DefaultMaxBackups)
	v.SetDefault("log.file.max_age_days", logger.DefaultMaxAgeDays)
	v.SetDefault("log.file.compress", false)
}

// Load reads the configuration. An empty path looks for config.yaml in the
// working directory and falls back to defaults if there is none; an
// explicit path must exist.
func Load(path string) (*SchedulerConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := &SchedulerConfig{}
	config.Port = v.GetInt("port")
	config.RoundRobinTimeQuantum = v.GetInt("scheduler.round_robin.time_quantum")
	config.MaxProcesses = v.GetInt("registry.max_processes")
	config.MemorySimulation = v.GetBool("memory_simulation")
	config.Log = logger.Config{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		File: logger.FileConfig{
			Path:       v.GetString("log.file.path"),
			MaxSizeMB:  v.GetInt("log.file.max_size_mb"),
			MaxBackups: v.GetInt("log.file.max_backups"),
			MaxAgeDays: v.GetInt("log.file.max_age_days"),
			Compress:   v.GetBool("log.file.compress"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *SchedulerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RoundRobinTimeQuantum <= 0 {
		return fmt.Errorf("invalid scheduler.round_robin.time_quantum %d: must be a positive integer", c.RoundRobinTimeQuantum)
	}
	if c.MaxProcesses <= 0 {
		return fmt.Errorf("invalid registry.max_processes %d: must be a positive integer", c.MaxProcesses)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
