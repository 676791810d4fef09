package config

import (
	"errors"
	"github.com/spf13/viper"
)

type NotifierConfig struct {
	TelegramToken  string `mapstructure:"telegram_token"`
	TelegramChatID int64  `mapstructure:"telegram_chat_id"`
}

// Enabled reports whether stage change notifications should be sent.
func (config NotifierConfig) Enabled() bool {
	return config.TelegramToken != "" && config.TelegramChatID != 0
}

func (config NotifierConfig) validate() error {
	if config.TelegramToken != "" && config.TelegramChatID == 0 {
		return errors.New("telegram_chat_id is required when telegram_token is set")
	}
	return nil
}

func (config NotifierConfig) bindEnvironmentVariables() error {
	if err := viper.BindEnv("notifier.telegram_token", "TG_TOKEN"); err != nil {
		return err
	}
	return viper.BindEnv("notifier.telegram_chat_id", "TG_CHAT_ID")
}
