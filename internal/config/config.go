// Package config reads settings from an optional YAML file and DAYPLAN_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const logFileOff = "off"

type Config struct {
	DBPath               string `yaml:"db_path" env:"DAYPLAN_DB_PATH" env-default:"dayplan.db"`
	DesktopNotifications bool   `yaml:"desktop_notifications" env:"DAYPLAN_DESKTOP_NOTIFICATIONS" env-default:"true"`
	ToastSeconds         int    `yaml:"toast_seconds" env:"DAYPLAN_TOAST_SECONDS" env-default:"5"`
	SchedulerBuffer      int    `yaml:"scheduler_buffer" env:"DAYPLAN_SCHEDULER_BUFFER" env-default:"64"`
	Timezone             string `yaml:"timezone" env:"DAYPLAN_TIMEZONE" env-default:"Local"`
	LogLevel             string `yaml:"log_level" env:"DAYPLAN_LOG_LEVEL" env-default:"info"`
	LogFile              string `yaml:"log_file" env:"DAYPLAN_LOG_FILE"`
}

// Load reads .env, then configPath (YAML) if it exists, then the
// environment. A missing config file falls back to the environment alone.
func Load(configPath string) (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: read env: %w", err)
		}
		return cfg.normalize()
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return Config{}, fmt.Errorf("config: read %q: %w", configPath, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: read env: %w", err)
		}
	}
	return cfg.normalize()
}

func (c Config) normalize() (Config, error) {
	c.DBPath = strings.TrimSpace(c.DBPath)
	if c.DBPath == "" {
		return Config{}, errors.New("config: DAYPLAN_DB_PATH must not be empty")
	}
	if c.ToastSeconds <= 0 {
		c.ToastSeconds = 5
	}
	if c.SchedulerBuffer <= 0 {
		c.SchedulerBuffer = 64
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFile)) {
	case "":
		c.LogFile = filepath.Join(filepath.Dir(c.DBPath), "dayplan.log")
	case logFileOff, "none", "-":
		c.LogFile = ""
	}
	if _, err := c.Location(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) ToastDuration() time.Duration {
	return time.Duration(c.ToastSeconds) * time.Second
}

// Location resolves Timezone; "" and "Local" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", tz, err)
	}
	return loc, nil
}
