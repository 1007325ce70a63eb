package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	BackendURL      string
	Username        string
	Password        string
	RedisAddr       string
	RedisPassword   string
	LogPath         string
	RefreshInterval time.Duration
}

// Load reads the dashboard section of path. A missing file leaves the defaults in place.
func Load(path string) (AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// defaults
	v.SetDefault("dashboard.backend_url", "http://127.0.0.1:9400")
	v.SetDefault("dashboard.username", "admin")
	v.SetDefault("dashboard.refresh_interval", "5s")
	v.SetDefault("dashboard.log_path", "dashboard.log")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	return AppConfig{
		BackendURL:      v.GetString("dashboard.backend_url"),
		Username:        v.GetString("dashboard.username"),
		Password:        v.GetString("dashboard.password"),
		RedisAddr:       v.GetString("dashboard.redis_addr"),
		RedisPassword:   v.GetString("dashboard.redis_password"),
		LogPath:         v.GetString("dashboard.log_path"),
		RefreshInterval: v.GetDuration("dashboard.refresh_interval"),
	}, nil
}
