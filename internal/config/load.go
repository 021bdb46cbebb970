package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file when --config is not given.
const EnvConfig = "BOXSTAGE_CONFIG"

const fileName = "config.yaml"

// Load builds the effective configuration: defaults, then the first config
// file found, then CLI flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := locate(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// locate resolves the config file. An explicit path is returned even when
// it does not exist so that Load reports it.
func locate() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return findConfigFile()
}

// findConfigFile returns the first existing file of ./config.yaml and the
// user config directory.
func findConfigFile() string {
	for _, path := range []string{
		fileName,
		filepath.Join(ConfigDir(), fileName),
	} {
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for the current OS.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "BoxStage")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "BoxStage")
		}
		return filepath.Join(home, "AppData", "Roaming", "BoxStage")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "boxstage")
	}
	return filepath.Join(home, ".config", "boxstage")
}

// loadFromFile decodes YAML over cfg. Keys absent from the file keep their
// current values; unknown keys are an error. An empty file is accepted.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
