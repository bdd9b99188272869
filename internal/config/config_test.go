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
	"testing"
)

// memStore is an in-memory TokenStore so tests never touch the OS keyring.
type memStore struct{ m map[string]string }

func (s *memStore) Get(service, key string) (string, error) {
	v, ok := s.m[service+"/"+key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}
func (s *memStore) Set(service, key, value string) error {
	if s.m == nil {
		s.m = map[string]string{}
	}
	s.m[service+"/"+key] = value
	return nil
}
func (s *memStore) Delete(service, key string) error {
	delete(s.m, service+"/"+key)
	return nil
}

func useMemStore(t *testing.T) *memStore {
	t.Helper()
	old := tokenStore
	ms := &memStore{}
	tokenStore = ms
	t.Cleanup(func() { tokenStore = old })
	return ms
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestEnvOverridesRelayAddr(t *testing.T) {
	isolateHome(t)
	useMemStore(t)
	t.Setenv(EnvRelayAddr, "0.0.0.0:9000")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Relay.ListenAddr, "0.0.0.0:9000"; got != want {
		t.Fatalf("Relay.ListenAddr = %q, want %q", got, want)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolateHome(t)
	useMemStore(t)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/walledit.log")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/walledit.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestMergeIncludesEditorFields(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Editor.DefaultFontFamily = "Noto Sans KR"
	src.Editor.ExportFormat = "JPG"
	src.Editor.FontDir = "/usr/share/fonts/custom"
	mergeInto(&dst, &src)
	if dst.Editor.DefaultFontFamily != "Noto Sans KR" || dst.Editor.ExportFormat != "jpg" || dst.Editor.FontDir != "/usr/share/fonts/custom" {
		t.Fatalf("editor fields not merged correctly: %#v", dst.Editor)
	}
}

func TestSaveLoadRoundTripWithToken(t *testing.T) {
	isolateHome(t)
	ms := useMemStore(t)

	cfg := Defaults()
	cfg.Relay.ListenAddr = "127.0.0.1:9999"
	cfg.Logging.Level = "debug"
	if err := Save(cfg, "tok123"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if ms.m[keyringService+"/"+keyringToken] != "tok123" {
		t.Fatalf("token not persisted to keyring store")
	}

	got, tok, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Relay.ListenAddr != "127.0.0.1:9999" || got.Logging.Level != "debug" {
		t.Fatalf("file config not merged: %#v", got)
	}
	if tok != "tok123" {
		t.Fatalf("token = %q", tok)
	}

	path, _ := ConfigPath()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if filepath.Ext(path) != ".yaml" {
		t.Fatalf("unexpected config path %q", path)
	}
}

func TestDefaultsWhenFileMissing(t *testing.T) {
	isolateHome(t)
	useMemStore(t)
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Relay.ListenAddr != Defaults().Relay.ListenAddr || cfg.Editor.DefaultFontFamily != "Pretendard" {
		t.Fatalf("defaults not applied: %#v", cfg)
	}
}

func TestEnvOverrideFor(t *testing.T) {
	t.Setenv(EnvRelayAddr, "x")
	if name, ok := EnvOverrideFor("relay.listen_addr"); !ok || name != EnvRelayAddr {
		t.Fatalf("EnvOverrideFor = %q, %v", name, ok)
	}
	if _, ok := EnvOverrideFor("nope.nope"); ok {
		t.Fatalf("unknown key must not report an override")
	}
}
