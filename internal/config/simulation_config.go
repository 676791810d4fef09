package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

type SimulationConfig struct {
	FailuresEnabled      bool               `mapstructure:"failures_enabled"`
	MaxRequestsPerSecond float32            `mapstructure:"max_requests_per_second"`
	FailureRates         map[string]float64 `mapstructure:"failure_rates"`
}

func (config SimulationConfig) validate() error {
	var invalid []string

	for op, rate := range config.FailureRates {
		if rate < 0 || rate > 1 {
			invalid = append(invalid, fmt.Sprintf("%s=%v", op, rate))
		}
	}

	if config.MaxRequestsPerSecond < 0 {
		invalid = append(invalid, "max_requests_per_second")
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid values: %s", strings.Join(invalid, ", "))
	}
	return nil
}

func (config SimulationConfig) bindEnvironmentVariables() error {
	if err := viper.BindEnv("simulation.max_requests_per_second", "MAX_REQUESTS_PER_SECOND"); err != nil {
		return err
	}
	return viper.BindEnv("simulation.failures_enabled", "FAILURES_ENABLED")
}
