package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Loader resolves the configuration with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil logger uses slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load starts from DefaultConfig and overlays the explicit path, or else the
// nearest arbor.yaml at or above dir. A .env next to the chosen file is loaded
// first so the file can reference its variables.
func (l *Loader) Load(explicit, dir string) (*Config, error) {
	cfg := DefaultConfig()

	path := explicit
	if path == "" {
		path = FindFile(dir)
	}
	if path == "" {
		l.logger.Debug("no project config found", slog.String("dir", dir))
		return cfg, cfg.Validate()
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	fileCfg, err := LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	l.logger.Debug("loaded project config", slog.String("path", path))
	cfg.Merge(fileCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindFile searches dir and its parents for arbor.yaml. It returns "" when
// none exists.
func FindFile(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}
