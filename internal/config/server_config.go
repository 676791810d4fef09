package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	LatencyMin      time.Duration `mapstructure:"latency_min"`
	LatencyMax      time.Duration `mapstructure:"latency_max"`
	CacheExpiration time.Duration `mapstructure:"cache_expiration"`
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port <= 0 || config.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
	}
	if config.LatencyMin < 0 || config.LatencyMax < config.LatencyMin {
		errs = append(errs, fmt.Errorf("invalid latency window: [%v, %v]", config.LatencyMin, config.LatencyMax))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}
	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {
	var errs []error
	if err := viper.BindEnv("server.port", "PORT"); err != nil {
		errs = append(errs, err)
	}
	if err := viper.BindEnv("server.latency_min", "LATENCY_MIN"); err != nil {
		errs = append(errs, err)
	}
	if err := viper.BindEnv("server.latency_max", "LATENCY_MAX"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
