package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestLoadOrCreateConfigMissingCreatesDefault(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "config", "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	// Ensure missing
	if _, err := os.Stat(configPath); err == nil {
		t.Fatalf("expected config file to be missing")
	}

	created, err := LoadOrCreateConfig()
	if err != nil {
		t.Fatalf("LoadOrCreateConfig() error: %v", err)
	}
	if !created {
		t.Fatalf("LoadOrCreateConfig() created=false, want true")
	}

	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	var got Config
	if _, err := toml.DecodeFile(configPath, &got); err != nil {
		t.Fatalf("decode created config: %v", err)
	}
	if got.Server.Host != "127.0.0.1" {
		t.Fatalf("default server host = %q, want %q", got.Server.Host, "127.0.0.1")
	}
	if got.Server.Port != 8888 {
		t.Fatalf("default server port = %d, want %d", got.Server.Port, 8888)
	}
	if got.Detect.TargetDuration != 60 {
		t.Fatalf("default target duration = %v, want 60", got.Detect.TargetDuration)
	}
	if got.Reframe.SampleRate != 10 {
		t.Fatalf("default sample rate = %d, want 10", got.Reframe.SampleRate)
	}
}

func TestSaveConfigCreatesParentDirs(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "deep", "nest", "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	Conf = defaultConfig()
	Conf.Server.Port = 9999

	if err := SaveConfig(); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	if _, err := os.Stat(filepath.Dir(configPath)); err != nil {
		t.Fatalf("expected parent directories to exist: %v", err)
	}

	var got Config
	if _, err := toml.DecodeFile(configPath, &got); err != nil {
		t.Fatalf("decode saved config: %v", err)
	}
	if got.Server.Port != 9999 {
		t.Fatalf("saved server port = %d, want %d", got.Server.Port, 9999)
	}
}

func TestLoadOrCreateConfigLoadsExisting(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	Conf = defaultConfig()
	Conf.Server.Host = "0.0.0.0"
	Conf.Server.Port = 9999
	if err := SaveConfig(); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	Conf = Config{}

	created, err := LoadOrCreateConfig()
	if err != nil {
		t.Fatalf("LoadOrCreateConfig() error: %v", err)
	}
	if created {
		t.Fatal("expected created=false when config file exists")
	}

	if Conf.Server.Host != "0.0.0.0" {
		t.Errorf("loaded Server.Host = %q, want %q", Conf.Server.Host, "0.0.0.0")
	}
	if Conf.Server.Port != 9999 {
		t.Errorf("loaded Server.Port = %d, want %d", Conf.Server.Port, 9999)
	}
}

func TestCheckConfig(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "min above target rejected", mutate: func(c *Config) { c.Detect.MinDuration = 80 }, wantErr: true},
		{name: "target above max rejected", mutate: func(c *Config) { c.Detect.TargetDuration = 120 }, wantErr: true},
		{name: "zero min rejected", mutate: func(c *Config) { c.Detect.MinDuration = 0 }, wantErr: true},
		{name: "zero max clips rejected", mutate: func(c *Config) { c.Detect.MaxClips = 0 }, wantErr: true},
		{name: "zero sample rate rejected", mutate: func(c *Config) { c.Reframe.SampleRate = 0 }, wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			Conf = defaultConfig()
			tc.mutate(&Conf)
			err := CheckConfig()
			if tc.wantErr && err == nil {
				t.Fatal("CheckConfig() = nil, want error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("CheckConfig() error: %v", err)
			}
		})
	}
}
