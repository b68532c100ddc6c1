package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings ankibridge reads at startup.
type Config struct {
	LogLevel         string
	LogFormat        string
	LogFile          string
	UserAgent        string
	MobileSuccessURL string
}

const (
	defaultConfigPath = "~/.config/ankibridge/config.toml"
	defaultLogFile    = "~/.local/share/ankibridge/ankibridge.log"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	dotenvFile        = ".env"
)

type fileConfig struct {
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
		File   string `toml:"file"`
	} `toml:"log"`
	Bridge struct {
		UserAgent        string `toml:"user_agent"`
		MobileSuccessURL string `toml:"mobile_success_url"`
	} `toml:"bridge"`
}

// envConfig lists the environment overrides. Empty values are ignored.
type envConfig struct {
	LogLevel         string `env:"ANKIBRIDGE_LOG_LEVEL"`
	LogFormat        string `env:"ANKIBRIDGE_LOG_FORMAT"`
	LogFile          string `env:"ANKIBRIDGE_LOG_FILE"`
	UserAgent        string `env:"ANKIBRIDGE_USER_AGENT"`
	MobileSuccessURL string `env:"ANKIBRIDGE_MOBILE_SUCCESS_URL"`
}

// Load locates and parses the config file, falling back to defaults when it
// is missing, then applies .env and ANKIBRIDGE_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotenvFile, err)
	}

	cfg := Config{LogLevel: defaultLogLevel, LogFormat: defaultLogFormat, LogFile: defaultLogFile}

	var raw fileConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var overrides envConfig
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.LogLevel = firstNonEmpty(overrides.LogLevel, raw.Log.Level, defaultLogLevel)
	cfg.LogFormat = firstNonEmpty(overrides.LogFormat, raw.Log.Format, defaultLogFormat)
	cfg.LogFile = mustExpand(firstNonEmpty(overrides.LogFile, raw.Log.File, defaultLogFile))
	cfg.UserAgent = firstNonEmpty(overrides.UserAgent, raw.Bridge.UserAgent)
	cfg.MobileSuccessURL = firstNonEmpty(overrides.MobileSuccessURL, raw.Bridge.MobileSuccessURL)

	return cfg, nil
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
