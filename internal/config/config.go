package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything billfold needs to reach the invoice service and
// write its own artifacts.
type Config struct {
	APIURL      string `envconfig:"API_URL"`
	DownloadDir string `envconfig:"DOWNLOAD_DIR"`
	LogPath     string `envconfig:"LOG_PATH"`
}

const (
	defaultConfigPath  = "~/.config/billfold/config.toml"
	defaultAPIURL      = "http://localhost:5000/api"
	defaultDownloadDir = "~/Downloads"
	defaultLogPath     = "~/.local/share/billfold/billfold.log"

	envPrefix = "BILLFOLD"
)

// Load resolves the configuration: built-in defaults, then the TOML file at
// path (or the default location), then BILLFOLD_* environment variables. A
// missing file is fine; a malformed one is not. A .env file in the working
// directory is honored when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIURL:      defaultAPIURL,
		DownloadDir: defaultDownloadDir,
		LogPath:     defaultLogPath,
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	if err := applyFile(&cfg, resolved); err != nil {
		return Config{}, err
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	cfg.DownloadDir = mustExpand(fallback(cfg.DownloadDir, defaultDownloadDir))
	cfg.LogPath = mustExpand(fallback(cfg.LogPath, defaultLogPath))

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL      string `toml:"api_url"`
		DownloadDir string `toml:"download_dir"`
		LogPath     string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.DownloadDir); v != "" {
		cfg.DownloadDir = v
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = v
	}
	return nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
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
