package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	SeedCandidates   int    `mapstructure:"seed_candidates"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.SeedCandidates < 0 {
		return fmt.Errorf("seed_candidates must not be negative")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	if err := viper.BindEnv("db.seed_candidates", "DB_SEED_CANDIDATES"); err != nil {
		return err
	}
	return viper.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}
