package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service settings for the Action Center.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	DBPath          string        `mapstructure:"db_path"`
	AWSProfile      string        `mapstructure:"aws_profile"`
	AzureProfile    string        `mapstructure:"azure_profile"`
}

// Load reads the config file at path, with env vars (AC_ prefix) taking
// precedence over file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("AC")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("db_path", "action-center.db")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
