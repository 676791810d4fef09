package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger"`
	DB         DBConfig         `mapstructure:"db"`
	Server     ServerConfig     `mapstructure:"server"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Drafts     DraftsConfig     `mapstructure:"drafts"`
	Notifier   NotifierConfig   `mapstructure:"notifier"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, _ := os.LookupEnv("MODE"); value == "test" {
		configFile = "../../configs/config.yaml"
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	viper.SetDefault("MODE", "release")

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

type section interface {
	bindEnvironmentVariables() error
}

func bindEnvironmentVariables() error {
	var errs []error

	sections := map[string]section{
		"LoggerConfig":     LoggerConfig{},
		"DBConfig":         DBConfig{},
		"ServerConfig":     ServerConfig{},
		"SimulationConfig": SimulationConfig{},
		"DraftsConfig":     DraftsConfig{},
		"NotifierConfig":   NotifierConfig{},
	}

	for name, s := range sections {
		if err := s.bindEnvironmentVariables(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Server.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := config.Simulation.validate(); err != nil {
		errs = append(errs, fmt.Errorf("SimulationConfig: %w", err))
	}

	if err := config.Drafts.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DraftsConfig: %w", err))
	}

	if err := config.Notifier.validate(); err != nil {
		errs = append(errs, fmt.Errorf("NotifierConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
