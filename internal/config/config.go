package config

import (
	"errors"
	"strings"
	"time"

	"zipcode-api/internal/zipcloud"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	DBSource           string        `mapstructure:"DB_SOURCE"`
	ZipcloudBaseURL    string        `mapstructure:"ZIPCLOUD_BASE_URL"`
	LookupTimeout      time.Duration `mapstructure:"LOOKUP_TIMEOUT"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	CORSAllowedOrigins string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// LoadConfig reads configuration from app.env in path, then from the environment.
// A missing file is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("ZIPCLOUD_BASE_URL", zipcloud.DefaultBaseURL)
	v.SetDefault("LOOKUP_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	err = v.Unmarshal(&config)
	return config, err
}

// AllowedOrigins splits CORSAllowedOrigins into trimmed, non-empty origins.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
