package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"placement/ml"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Host != "0.0.0.0" || config.Http.Port != 5000 {
		t.Fatalf("unexpected bind address %s:%d", config.Http.Host, config.Http.Port)
	}
	if config.ML.ModelType != "decision_tree" || config.ML.CacheSize != 0 {
		t.Fatalf("unexpected ml config: %+v", config.ML)
	}
	if config.Log.Level != "info" {
		t.Fatalf("unexpected log level: %s", config.Log.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	config, err := loadConfig("testdata/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Host != "127.0.0.1" || config.Http.Port != 8081 {
		t.Fatalf("unexpected bind address %s:%d", config.Http.Host, config.Http.Port)
	}
	if config.Http.ReadTimeout != 3*time.Second {
		t.Fatalf("unexpected read timeout: %v", config.Http.ReadTimeout)
	}
	// Unset keys keep their defaults.
	if config.Http.WriteTimeout != 10*time.Second || config.Http.MaxBodyBytes != 1<<20 {
		t.Fatalf("defaults lost: %+v", config.Http)
	}
	if len(config.Http.AllowedOrigins) != 1 || config.Http.AllowedOrigins[0] != "https://example.com" {
		t.Fatalf("unexpected origins: %v", config.Http.AllowedOrigins)
	}
	if config.ML.CacheSize != 64 || config.Log.Level != "warn" || config.Log.Encoding != "console" {
		t.Fatalf("unexpected config: %+v", config)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := loadConfig("testdata/nope.yaml"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PLACEMENT_HOST", "localhost")
	t.Setenv("PLACEMENT_PORT", "9000")
	t.Setenv("PLACEMENT_MODEL_TYPE", "logistic_regression")
	t.Setenv("PLACEMENT_MODEL_PATH", "/srv/model.json")
	t.Setenv("PLACEMENT_LOG_LEVEL", "debug")

	config, err := loadConfig("testdata/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Host != "localhost" || config.Http.Port != 9000 {
		t.Fatalf("unexpected bind address %s:%d", config.Http.Host, config.Http.Port)
	}
	if config.ML.ModelType != "logistic_regression" || config.ML.ModelPath != "/srv/model.json" {
		t.Fatalf("unexpected ml config: %+v", config.ML)
	}
	if config.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %s", config.Log.Level)
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	for _, port := range []string{"abc", "0", "70000"} {
		t.Setenv("PLACEMENT_PORT", port)
		if _, err := loadConfig(""); err == nil {
			t.Fatalf("port %q: expected error", port)
		}
	}
}

func TestRepositoryConfigLoadsShippedModel(t *testing.T) {
	config, err := loadConfig(filepath.Join("..", "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	model, err := ml.LoadModel(config.ML.ModelType, filepath.Join("..", config.ML.ModelPath))
	if err != nil {
		t.Fatalf("shipped model does not load: %v", err)
	}
	labels, err := model.Predict(context.Background(), []ml.FeatureRow{{CGPA: 8.5, IQ: 110, ProfileScore: 7.2}})
	if err != nil || len(labels) != 1 {
		t.Fatalf("unexpected prediction: %v %v", labels, err)
	}
}
