package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type DraftsConfig struct {
	ExpirationDays int `mapstructure:"expiration_days"`
}

func (config DraftsConfig) validate() error {
	if config.ExpirationDays <= 0 {
		return fmt.Errorf("expiration_days must be greater than zero")
	}
	return nil
}

func (config DraftsConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("drafts.expiration_days", "DRAFTS_EXPIRATION_DAYS")
}
