package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "")
		config := DefaultConfig()

		if config.Database.Path != "./mvx.db" {
			t.Errorf("expected database path ./mvx.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.OMDb.BaseURL != "https://www.omdbapi.com/" {
			t.Errorf("expected OMDb base URL https://www.omdbapi.com/, got %s", config.OMDb.BaseURL)
		}

		if config.Storage.Driver != "sqlite" {
			t.Errorf("expected storage driver sqlite, got %s", config.Storage.Driver)
		}

		if config.Storage.Key != "watchList" {
			t.Errorf("expected storage key watchList, got %s", config.Storage.Key)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("expected default config to validate, got %v", err)
		}
	})

	t.Run("API key from environment", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "env-key")
		config := DefaultConfig()

		if config.OMDb.APIKey != "env-key" {
			t.Errorf("expected api key from environment, got %q", config.OMDb.APIKey)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "")
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "")
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[omdb]
api_key = "file-key"
timeout = "3s"
workers = 2

[storage]
driver = "redis"

[redis]
address = "localhost:6380"

[server]
host = "0.0.0.0"
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.OMDb.APIKey != "file-key" {
			t.Errorf("expected api key file-key, got %s", config.OMDb.APIKey)
		}
		if config.OMDb.ClientTimeout() != 3*time.Second {
			t.Errorf("expected timeout 3s, got %s", config.OMDb.ClientTimeout())
		}
		if config.Storage.Driver != "redis" {
			t.Errorf("expected storage driver redis, got %s", config.Storage.Driver)
		}
		if config.Storage.Key != "watchList" {
			t.Errorf("expected default storage key to survive, got %s", config.Storage.Key)
		}
		if config.OMDb.BaseURL != "https://www.omdbapi.com/" {
			t.Errorf("expected default base URL to survive, got %s", config.OMDb.BaseURL)
		}
		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
	})

	t.Run("LoadConfig With Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig With Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[omdb\nbroken"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error for invalid TOML")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := DefaultConfig()
		config.Storage.Driver = "mongo"
		if err := config.Validate(); !errors.Is(err, ErrUnknownStorage) {
			t.Errorf("expected ErrUnknownStorage, got %v", err)
		}

		config = DefaultConfig()
		config.Storage.Key = ""
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ClientTimeout Fallback", func(t *testing.T) {
		for _, raw := range []string{"", "nonsense", "-1s"} {
			o := OMDbConfig{Timeout: raw}
			if got := o.ClientTimeout(); got != 10*time.Second {
				t.Errorf("timeout %q: expected fallback 10s, got %s", raw, got)
			}
		}
	})
}
