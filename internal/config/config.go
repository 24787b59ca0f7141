// Package config aggregates client configuration from environment
// variables and an optional config file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env and
// optional config files.
type Config struct {
	API struct {
		BaseURL string
		Timeout time.Duration
	}
	State struct {
		Dir string // token and log files live here
	}
	Log struct {
		Level string
	}
}

// TokenPath is where the session token is persisted. It is the only
// piece of client state that survives a restart.
func (c Config) TokenPath() string {
	return filepath.Join(c.State.Dir, "token")
}

// LogPath is the log file location. The TUI owns stdout, so logs go to
// a file.
func (c Config) LogPath() string {
	return filepath.Join(c.State.Dir, "uhealth.log")
}

// Load reads configuration from environment variables (UHEALTH_ prefix)
// and an optional config file in the current directory or the state dir.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("UHEALTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	stateDir := defaultStateDir()
	v.SetDefault("api.baseurl", "https://api.u-health.app")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("state.dir", stateDir)
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if stateDir != "" {
		v.AddConfigPath(stateDir)
	}
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".uhealth"
	}
	return filepath.Join(home, ".uhealth")
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		eq := strings.Index(line, "=")
		if eq <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
