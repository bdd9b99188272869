/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	keyring "github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are treated as read-only overrides at
// runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type RelayConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	// Token is not stored on disk; it lives in the OS keychain.
}

type EditorConfig struct {
	DefaultFontFamily string `yaml:"default_font_family"`
	ExportFormat      string `yaml:"export_format"` // "png" | "jpg" | "pdf"
	ExportDir         string `yaml:"export_dir"`    // empty means the layout's exports/ folder
	FontDir           string `yaml:"font_dir"`      // optional directory of .ttf files to load
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Relay         RelayConfig   `yaml:"relay"`
	Editor        EditorConfig  `yaml:"editor"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Relay:         RelayConfig{ListenAddr: "127.0.0.1:8537", TimeoutMs: 30000},
		Editor:        EditorConfig{DefaultFontFamily: "Pretendard", ExportFormat: "png"},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvRelayAddr      = "WALLEDIT_RELAY_ADDR"
	EnvRelayTimeoutMs = "WALLEDIT_RELAY_TIMEOUT_MS"
	EnvExportFormat   = "WALLEDIT_EXPORT_FORMAT"
	EnvExportDir      = "WALLEDIT_EXPORT_DIR"
	EnvFontDir        = "WALLEDIT_FONT_DIR"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "WALLEDIT_LOG_LEVEL"
	EnvLogFormat = "WALLEDIT_LOG_FORMAT"
	EnvLogSource = "WALLEDIT_LOG_SOURCE"
	EnvLogFile   = "WALLEDIT_LOG_FILE"
)

// Service/keys for OS keyring.
const (
	keyringService = "WallpaperEditor"
	keyringToken   = "relay_token"
)

// tokenStore abstracts the keyring, so tests can stub it.
var tokenStore TokenStore = &osKeyring{}

type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// osKeyring implements TokenStore using the OS keyring via github.com/zalando/go-keyring.
type osKeyring struct{}

func (k *osKeyring) Get(service, key string) (string, error) {
	return keyring.Get(service, key)
}
func (k *osKeyring) Set(service, key, value string) error {
	return keyring.Set(service, key, value)
}
func (k *osKeyring) Delete(service, key string) error {
	return keyring.Delete(service, key)
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "WallpaperEditor")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "WallpaperEditor")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "walledit")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. The relay token comes from the keyring and is
// returned separately, never kept inside the struct.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	tok, _ := tokenStore.Get(keyringService, keyringToken)
	return cfg, tok, nil
}

// Save writes the user config YAML and persists the token into the OS
// keyring (if non-empty).
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if token != "" {
		if err := tokenStore.Set(keyringService, keyringToken, token); err != nil {
			return err
		}
	}
	return nil
}

// ForgetToken removes the relay token from the keyring.
func ForgetToken() error {
	err := tokenStore.Delete(keyringService, keyringToken)
	if err != nil && errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.Relay.ListenAddr) != "" {
		dst.Relay.ListenAddr = strings.TrimSpace(src.Relay.ListenAddr)
	}
	if src.Relay.TimeoutMs != 0 {
		dst.Relay.TimeoutMs = src.Relay.TimeoutMs
	}
	if strings.TrimSpace(src.Editor.DefaultFontFamily) != "" {
		dst.Editor.DefaultFontFamily = strings.TrimSpace(src.Editor.DefaultFontFamily)
	}
	if strings.TrimSpace(src.Editor.ExportFormat) != "" {
		dst.Editor.ExportFormat = strings.ToLower(strings.TrimSpace(src.Editor.ExportFormat))
	}
	if strings.TrimSpace(src.Editor.ExportDir) != "" {
		dst.Editor.ExportDir = strings.TrimSpace(src.Editor.ExportDir)
	}
	if strings.TrimSpace(src.Editor.FontDir) != "" {
		dst.Editor.FontDir = strings.TrimSpace(src.Editor.FontDir)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvRelayAddr)); v != "" {
		cfg.Relay.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRelayTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Relay.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportFormat)); v != "" {
		cfg.Editor.ExportFormat = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDir)); v != "" {
		cfg.Editor.ExportDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontDir)); v != "" {
		cfg.Editor.FontDir = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "relay.listen_addr":
		if os.Getenv(EnvRelayAddr) != "" {
			return EnvRelayAddr, true
		}
	case "relay.timeout_ms":
		if os.Getenv(EnvRelayTimeoutMs) != "" {
			return EnvRelayTimeoutMs, true
		}
	case "editor.export_format":
		if os.Getenv(EnvExportFormat) != "" {
			return EnvExportFormat, true
		}
	case "editor.export_dir":
		if os.Getenv(EnvExportDir) != "" {
			return EnvExportDir, true
		}
	case "editor.font_dir":
		if os.Getenv(EnvFontDir) != "" {
			return EnvFontDir, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
